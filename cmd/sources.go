package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chippleh1392/audio-band/internal/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List audio source adapters and whether they are reachable right now.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range source.Names() {
			src, err := source.Open(name)
			if err != nil {
				fmt.Printf("%-8s unavailable (%v)\n", name, err)
				continue
			}
			src.Close()
			fmt.Printf("%-8s available\n", name)
		}
	},
}
