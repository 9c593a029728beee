package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	texerrors "github.com/ByLCY/texscope/errors"
	"github.com/ByLCY/texscope/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := run(ctx, c); err != nil {
		os.Exit(report(err, c, os.Stderr))
	}
}

// report 输出去掉错误码前缀的错误信息并返回退出码，错误码只记在调试日志里。
func report(err error, c *cli.CLI, w io.Writer) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	if code := texerrors.GetCode(err); code != "" {
		c.Logger.Debug("command failed", "code", code)
	}
	fmt.Fprintln(w, texerrors.UserMessage(err))
	return 1
}

// run 构建命令树；-v 在命令执行前切换到调试日志。
func run(ctx context.Context, c *cli.CLI) error {
	var verbose bool

	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
