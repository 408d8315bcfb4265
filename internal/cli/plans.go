package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tablewright/seatplan/pkg/store"
)

// plansCommand creates the plans command for managing the plan store.
func (c *CLI) plansCommand() *cobra.Command {
	var (
		dir      string
		mongoURI string
		mongoDB  string
	)

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage named plans in the plan store",
		Long: `Manage named plans in the plan store.

Plans are stored as JSON documents under ~/.config/seatplan/plans by default.
Pass --mongo to use a MongoDB collection instead, which lets several hosts
share the same saved plans.`,
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", "", "plan store directory (default: ~/.config/seatplan/plans)")
	cmd.PersistentFlags().StringVar(&mongoURI, "mongo", "", "MongoDB connection URI for the plan store")
	cmd.PersistentFlags().StringVar(&mongoDB, "mongo-db", "seatplan", "MongoDB database name")

	open := func(cmd *cobra.Command) (store.Store, error) {
		return openStore(cmd, dir, mongoURI, mongoDB)
	}

	cmd.AddCommand(c.plansListCommand(open))
	cmd.AddCommand(c.plansSaveCommand(open))
	cmd.AddCommand(c.plansExportCommand(open))
	cmd.AddCommand(c.plansDeleteCommand(open))

	return cmd
}

// openStore builds the plan store selected by the persistent flags.
func openStore(cmd *cobra.Command, dir, mongoURI, mongoDB string) (store.Store, error) {
	if mongoURI != "" {
		return store.NewMongoStore(cmd.Context(), mongoURI, mongoDB)
	}
	return store.NewFileStore(dir)
}

type storeOpener func(cmd *cobra.Command) (store.Store, error)

// plansListCommand creates the "plans list" subcommand.
func (c *CLI) plansListCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No saved plans")
				return nil
			}
			for _, name := range names {
				rec, err := st.Get(cmd.Context(), name)
				if err != nil || rec == nil {
					fmt.Println(name)
					continue
				}
				printKeyValue(name, fmt.Sprintf("%d tables, saved %s",
					len(rec.Document.Tables), rec.SavedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

// plansSaveCommand creates the "plans save" subcommand.
func (c *CLI) plansSaveCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "save [plan.json] [name]",
		Short: "Save a plan file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			rec := &store.Record{Name: args[1], Document: doc, SavedAt: time.Now().UTC()}
			if err := st.Set(cmd.Context(), rec); err != nil {
				return err
			}
			printSuccess("Saved plan %q", args[1])
			return nil
		},
	}
}

// plansExportCommand creates the "plans export" subcommand.
func (c *CLI) plansExportCommand(open storeOpener) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Write a saved plan back to a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("no saved plan named %q", args[0])
			}

			outputPath := output
			if outputPath == "" {
				outputPath = args[0] + ".plan.json"
			}
			if err := writeDocument(rec.Document, outputPath); err != nil {
				return err
			}
			printSuccess("Exported plan %q", args[0])
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.plan.json)")
	return cmd
}

// plansDeleteCommand creates the "plans delete" subcommand.
func (c *CLI) plansDeleteCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted plan %q", args[0])
			return nil
		},
	}
}
