package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamilw/dietplan/internal/store"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
}

var clientsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsAdd,
}

var clientsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List clients",
	Args:  cobra.NoArgs,
	RunE:  runClientsLs,
}

var clientsAddNotes string

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsLsCmd)
	clientsAddCmd.Flags().StringVar(&clientsAddNotes, "notes", "", "Important notes for the client")
}

func runClientsAdd(cmd *cobra.Command, args []string) error {
	database, s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	client, err := s.Clients.Create(store.ClientCreateParams{
		Name:  args[0],
		Notes: clientsAddNotes,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), client.UUID)
	return nil
}

func runClientsLs(cmd *cobra.Command, args []string) error {
	database, s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	clients, err := s.Clients.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tNAME\tNOTES")
	for _, c := range clients {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.UUID, c.Name, c.Notes)
	}
	return w.Flush()
}
