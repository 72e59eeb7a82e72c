// Package tom implements the "tomkv tom" command group, which mounts and
// reads/writes tom documents through a running "tomkv serve" process.
package tom

import (
	"github.com/ValentinKolb/tomkv/cmd/util"
	"github.com/ValentinKolb/tomkv/rpc/client"
	"github.com/spf13/cobra"
)

// TomCommands groups every tom-mount subcommand.
var TomCommands = &cobra.Command{
	Use:   "tom",
	Short: "Mount and query tom documents through a running server",
}

func init() {
	util.SetupRPCClientFlags(TomCommands)
	TomCommands.AddCommand(
		createCmd,
		deleteCmd,
		mountCmd,
		unmountCmd,
		mountsCmd,
		keyCmd,
		mappedCmd,
		valueCmd,
		setKeyCmd,
		setMappedCmd,
		setValueCmd,
		insertCmd,
		removeCmd,
	)
}

// newClient builds an rpc/client.Client from the currently bound flags.
func newClient(cmd *cobra.Command) (*client.Client, error) {
	if err := util.BindCommandFlags(cmd); err != nil {
		return nil, err
	}
	util.InitClientConfig()

	codec, err := util.GetSerializer()
	if err != nil {
		return nil, err
	}

	return client.New(*util.GetClientConfig(), codec), nil
}
