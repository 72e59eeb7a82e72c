package tom

import (
	"fmt"
	"time"

	"github.com/ValentinKolb/tomkv/cmd/util"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <tom-id>",
	Short: "Create an empty tom document on the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		ok, err := c.CreateTom(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <tom-id>",
	Short: "Delete a tom document from the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		ok, err := c.DeleteTom(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var mountCmd = &cobra.Command{
	Use:   "mount <mount-id> <tom-id> <internal-path>",
	Short: "Bind mount-id to a node within a tom document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		priority, _ := cmd.Flags().GetInt("priority")
		if err := c.Mount(args[0], args[1], args[2], priority); err != nil {
			return err
		}
		fmt.Printf("mounted %s -> %s:%s (priority %d)\n", args[0], args[1], args[2], priority)
		return nil
	},
}

var unmountCmd = &cobra.Command{
	Use:   "unmount <mount-id>",
	Short: "Remove every binding registered under mount-id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		ok, err := c.Unmount(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var mountsCmd = &cobra.Command{
	Use:   "mounts <mount-id>",
	Short: "List every binding registered under mount-id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		mounts, err := c.Mounts(args[0])
		if err != nil {
			return err
		}
		for _, m := range mounts {
			fmt.Printf("%s:%s\n", m.TomID, m.InternalPath)
		}
		return nil
	},
}

var keyCmd = &cobra.Command{
	Use:   "key <path>",
	Short: "Print every surviving key at path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		keys, err := c.Key(args[0])
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	},
}

var mappedCmd = &cobra.Command{
	Use:   "mapped <path>",
	Short: "Print every surviving mapped value at path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		mappeds, err := c.Mapped(args[0])
		if err != nil {
			return err
		}
		for _, m := range mappeds {
			fmt.Println(m)
		}
		return nil
	},
}

var valueCmd = &cobra.Command{
	Use:   "value <path>",
	Short: "Print every surviving (key, mapped) pair at path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		values, err := c.Value(args[0])
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Printf("%s\t%s\n", v.Key, v.Mapped)
		}
		return nil
	},
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <path> <key>",
	Short: "Overwrite the key at path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		asNew, _ := cmd.Flags().GetBool("as-new")
		n, err := c.SetKey(args[0], args[1], asNew)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var setMappedCmd = &cobra.Command{
	Use:   "set-mapped <path> <mapped>",
	Short: "Overwrite the mapped value at path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		asNew, _ := cmd.Flags().GetBool("as-new")
		n, err := c.SetMapped(args[0], args[1], asNew)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var setValueCmd = &cobra.Command{
	Use:   "set-value <path> <key> <mapped>",
	Short: "Overwrite both key and mapped at path",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		asNew, _ := cmd.Flags().GetBool("as-new")
		n, err := c.SetValue(args[0], args[1], args[2], asNew)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert <path> <key> <mapped>",
	Short: "Write (key, mapped) at path if absent or outdated",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		lifetimeSec, _ := cmd.Flags().GetInt("lifetime")
		ok, err := c.Insert(args[0], args[1], args[2], time.Duration(lifetimeSec)*time.Second)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Delete the node at path wherever present and not outdated",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		ok, err := c.Remove(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

func init() {
	mountCmd.Flags().Int("priority", 0, util.WrapString("Priority of this binding"))
	setKeyCmd.Flags().Bool("as-new", false, util.WrapString("Bypass the outdated check and reset lifetime"))
	setMappedCmd.Flags().Bool("as-new", false, util.WrapString("Bypass the outdated check and reset lifetime"))
	setValueCmd.Flags().Bool("as-new", false, util.WrapString("Bypass the outdated check and reset lifetime"))
	insertCmd.Flags().Int("lifetime", 0, util.WrapString("Lifetime in seconds; 0 means no expiration"))
}
