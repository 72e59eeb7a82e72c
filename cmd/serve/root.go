// Package serve implements the "tomkv serve" command, which starts an HTTP
// server hosting a tomstore.Storage.
package serve

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/tomkv/cmd/util"
	"github.com/ValentinKolb/tomkv/rpc/common"
	"github.com/ValentinKolb/tomkv/rpc/server"
	"github.com/ValentinKolb/tomkv/tomstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ServeCmd starts the HTTP server.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tomkv HTTP server",
	Long:  `Starts an HTTP server hosting a tom storage rooted at --dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := util.BindCommandFlags(cmd); err != nil {
			return err
		}

		_ = godotenv.Load(".env")
		_ = godotenv.Load(".env.local")
		viper.SetEnvPrefix("tomkv")
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		viper.AutomaticEnv()

		cfg := common.ServerConfig{
			Endpoint: viper.GetString("endpoint"),
			DataDir:  viper.GetString("dir"),
			LogLevel: viper.GetString("log-level"),
		}

		codec, err := util.GetSerializer()
		if err != nil {
			return err
		}

		storage := tomstore.New[string, string](cfg.DataDir, tomstore.StringCodec(), tomstore.StringCodec())
		defer storage.Close()

		fmt.Println(cfg.String())

		return server.New(storage, codec, cfg).ListenAndServe()
	},
}

func init() {
	key := "endpoint"
	ServeCmd.Flags().String(key, ":8080", util.WrapString("The address the server listens on"))

	key = "dir"
	ServeCmd.Flags().String(key, "./data", util.WrapString("The directory holding tom documents"))

	key = "log-level"
	ServeCmd.Flags().String(key, "info", util.WrapString("Log level: debug, info, warn, error"))
}
