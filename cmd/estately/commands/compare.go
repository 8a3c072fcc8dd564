package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edvin/estately/internal/compare"
)

// Compare returns the command group for the local property comparison list.
func Compare() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Manage the local property comparison list",
		Long: `Manage the side-by-side property comparison list. The list holds up
to four property IDs and is persisted under the user config directory.`,
	}

	cmd.AddCommand(compareAdd())
	cmd.AddCommand(compareRemove())
	cmd.AddCommand(compareList())
	cmd.AddCommand(compareClear())

	return cmd
}

func openCompareStore() (*compare.Store, error) {
	path, err := compare.DefaultPath()
	if err != nil {
		return nil, err
	}
	return compare.NewStore(path, 0)
}

func compareAdd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <property-id>",
		Short: "Add a property to the comparison list",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := openCompareStore()
			if err != nil {
				return err
			}
			added, err := store.Add(args[0])
			if err != nil {
				return err
			}
			if !added {
				if store.Full() && !store.Contains(args[0]) {
					fmt.Println(dimStyle.Render(fmt.Sprintf("Comparison list is full (%d properties).", store.Len())))
				} else {
					fmt.Println(dimStyle.Render("Already on the comparison list."))
				}
				return nil
			}
			fmt.Printf("Added %s (%d on the list)\n", args[0], store.Len())
			return nil
		},
	}
}

func compareRemove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <property-id>",
		Short: "Remove a property from the comparison list",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := openCompareStore()
			if err != nil {
				return err
			}
			removed, err := store.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println(dimStyle.Render("Not on the comparison list."))
				return nil
			}
			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	}
}

func compareList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the comparison list",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openCompareStore()
			if err != nil {
				return err
			}
			ids := store.IDs()
			if len(ids) == 0 {
				fmt.Println(dimStyle.Render("Comparison list is empty."))
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func compareClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the comparison list",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openCompareStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("Comparison list cleared.")
			return nil
		},
	}
}
