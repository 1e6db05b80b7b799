// Package main provides the sysfetch command-line tool.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opd-ai/sysfetch/internal/monitor"
	"github.com/opd-ai/sysfetch/internal/profiling"
	"github.com/opd-ai/sysfetch/internal/render"
	"github.com/opd-ai/sysfetch/pkg/sysfetch"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(sysfetch.Options{})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		pterm.Error.WithWriter(stderr).Println(err)
		return 1
	}
	return 0
}

// cliFlags holds everything the command line can set.
type cliFlags struct {
	opts    sysfetch.Options
	list    bool
	debug   bool
	profile profiling.Config
}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.opts.ConfigPath, "config", "c", "", "path to the Lua configuration file")
	fs.StringSliceVarP(&f.opts.Show, "show", "s", nil, "readouts to display, in order (repeatable)")
	fs.StringSliceVarP(&f.opts.Hide, "hide", "H", nil, "readouts to leave out (repeatable)")
	fs.BoolVarP(&f.opts.Doctor, "doctor", "d", false, "explain why readouts failed")
	fs.BoolVarP(&f.opts.Bar, "bar", "b", false, "draw gauges as bars")
	fs.BoolVar(&f.opts.ShortShell, "short-shell", false, "show the shell and terminal by name only")
	fs.BoolVar(&f.opts.ShortUptime, "short-uptime", false, "show uptime as \"1d 3h 12m\"")
	fs.StringVarP(&f.opts.Interface, "interface", "i", "", "network interface for the local IP readout")
	fs.StringVarP(&f.opts.Export, "export", "e", "", "write every readout as yaml or json")
	fs.BoolVarP(&f.list, "list-readouts", "l", false, "list the available readouts and exit")
	fs.StringVar(&f.opts.Remote, "remote", "", "read a remote Linux host over SSH (user@host[:port])")
	fs.StringVar(&f.opts.Identity, "identity", "", "private key for --remote (default: SSH agent)")
	fs.BoolVar(&f.opts.InsecureHostKey, "insecure", false, "skip host key verification for --remote")
	fs.DurationVar(&f.opts.Timeout, "timeout", 0, "per-probe timeout (e.g. 500ms)")
	fs.BoolVar(&f.debug, "debug", false, "log why each readout failed")

	fs.StringVar(&f.profile.CPUProfilePath, "cpuprofile", "", "write a CPU profile to `file`")
	fs.StringVar(&f.profile.MemProfilePath, "memprofile", "", "write a heap profile to `file`")
	fs.StringVar(&f.profile.TracePath, "trace", "", "write an execution trace to `file`")
	for _, name := range []string{"cpuprofile", "memprofile", "trace"} {
		_ = fs.MarkHidden(name)
	}
}

// newRootCommand builds the command. base supplies settings the command line
// cannot express, such as a replacement platform.
func newRootCommand(base sysfetch.Options) *cobra.Command {
	f := &cliFlags{opts: base}

	cmd := &cobra.Command{
		Use:   "sysfetch",
		Short: "Print a one-screen summary of the running system",
		Long: `sysfetch reads facts about the running system (host, kernel, distribution,
desktop, shell, processor, memory, battery and more) and prints them as a
labelled list. Readouts that cannot be determined are left out; --doctor
explains why.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return f.execute(cmd)
		},
	}
	cmd.SetVersionTemplate("sysfetch {{.Version}}\n")
	f.register(cmd.Flags())
	return cmd
}

func (f *cliFlags) execute(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if f.list {
		return render.PrintFieldList(out, monitor.AllFields())
	}

	opts := f.opts
	opts.Stdout = out
	if f.debug {
		opts.Logger = sysfetch.DebugLogger()
	}

	session, err := profiling.Start(f.profile)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Stop(); err != nil {
			pterm.Warning.WithWriter(cmd.ErrOrStderr()).Println(err)
		}
	}()

	return sysfetch.Run(cmd.Context(), opts)
}
