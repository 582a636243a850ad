package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/killallgit/stationcast/internal/services/episodes"
)

// episodesCmd groups episode registry commands
var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "Inspect podcast episodes",
}

// episodesListCmd prints a podcast's episodes
var episodesListCmd = &cobra.Command{
	Use:   "list <podcast-id>",
	Short: "List the episodes of a podcast",
	Long: `List the episodes of a podcast.

For the station podcast the stored episodes are listed. For imported
podcasts the live feed is fetched and each item shows how far it got
into the registry.

Example:
  stationcast episodes list 3
  stationcast episodes list 3 --limit 10 --sort id --dir desc`,
	Args: cobra.ExactArgs(1),
	RunE: runEpisodesList,
}

func init() {
	rootCmd.AddCommand(episodesCmd)
	episodesCmd.AddCommand(episodesListCmd)

	episodesListCmd.Flags().Int("offset", 0, "number of episodes to skip")
	episodesListCmd.Flags().Int("limit", episodes.DefaultPageSize, "maximum number of episodes")
	episodesListCmd.Flags().String("sort", "publication_date", "sort column for the station podcast (id, publication_date)")
	episodesListCmd.Flags().String("dir", "desc", "sort direction (asc, desc)")
}

func runEpisodesList(cmd *cobra.Command, args []string) error {
	podcastID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || podcastID == 0 {
		return fmt.Errorf("invalid podcast id: %q", args[0])
	}

	opts := episodes.ListOptions{}
	opts.Offset, _ = cmd.Flags().GetInt("offset")
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	opts.Sort, _ = cmd.Flags().GetString("sort")
	opts.Dir, _ = cmd.Flags().GetString("dir")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, db)
	if err != nil {
		db.Close()
		return err
	}
	defer a.close()

	list, err := a.episodes.ListEpisodes(ctx, uint(podcastID), opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderEpisodeList(list))
	return nil
}

// renderEpisodeList formats either flavour of episode listing as a table
func renderEpisodeList(list *episodes.EpisodeList) string {
	if list.Station {
		rows := make([][]string, 0, len(list.Episodes))
		for _, ep := range list.Episodes {
			file := ""
			if ep.HasFile() {
				file = strconv.FormatUint(uint64(*ep.FileID), 10)
			}
			rows = append(rows, []string{
				strconv.FormatUint(uint64(ep.ID), 10),
				ep.PublicationDate.UTC().Format("2006-01-02 15:04"),
				file,
				ep.DownloadURL,
			})
		}
		return renderTable(
			[]string{"ID", "Published", "File", "URL"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
		)
	}

	rows := make([][]string, 0, len(list.Items))
	for _, item := range list.Items {
		rows = append(rows, []string{item.GUID, item.Status, item.PubDate, item.Title})
	}
	return renderTable(
		[]string{"GUID", "Status", "Published", "Title"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	) + fmt.Sprintf("\n%d of %d feed items", len(list.Items), list.Total)
}
