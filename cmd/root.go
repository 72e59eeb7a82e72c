package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/tomkv/cmd/serve"
	"github.com/ValentinKolb/tomkv/cmd/tom"
	"github.com/ValentinKolb/tomkv/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "tomkv",
		Short: "mount-indirected XML document store",
		Long: fmt.Sprintf(`tomkv (v%s)

A concurrent key-value store backed by XML documents ("toms"), addressed
through mount points rather than direct file paths.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tomkv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tomkv v%s\n", Version)
		},
	}
)

func init() {
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(tom.TomCommands)
	RootCmd.AddCommand(versionCmd)

	key := "serializer"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("serializer to use (json, gob)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
