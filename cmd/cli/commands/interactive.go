package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command. The session reuses the app's
// database pool and Google clients, so OAuth runs at most once.
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without reconnecting
or re-authenticating. The session keeps running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			return runSession(sessionCommands(cmd.Parent()), os.Stdin, os.Stdout)
		},
	}
}

// sessionCommands collects the root's subcommands that can run inside a session
func sessionCommands(root *cobra.Command) map[string]*cobra.Command {
	commands := make(map[string]*cobra.Command)
	for _, subCmd := range root.Commands() {
		switch subCmd.Name() {
		case "interactive", "completion", "help":
			continue
		}
		commands[subCmd.Name()] = subCmd
	}
	return commands
}

// runSession reads commands line by line and runs them until exit or end of input
func runSession(commands map[string]*cobra.Command, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmdName, cmdArgs := parts[0], parts[1:]

		switch cmdName {
		case "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "help":
			printSessionHelp(out, commands)
			continue
		}

		targetCmd, exists := commands[cmdName]
		if !exists {
			fmt.Fprintf(out, "✗ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
			continue
		}

		if err := runSessionCommand(targetCmd, cmdArgs); err != nil {
			fmt.Fprintf(out, "✗ Error: %v\n\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// runSessionCommand calls the command's RunE directly. Going through Execute would
// run the root's PersistentPreRunE and initialise the app a second time.
func runSessionCommand(targetCmd *cobra.Command, args []string) error {
	// Flags keep their values between runs unless reset
	targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := targetCmd.ParseFlags(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	args = targetCmd.Flags().Args()

	if targetCmd.Args != nil {
		if err := targetCmd.Args(targetCmd, args); err != nil {
			return err
		}
	}

	switch {
	case targetCmd.RunE != nil:
		return targetCmd.RunE(targetCmd, args)
	case targetCmd.Run != nil:
		targetCmd.Run(targetCmd, args)
	}
	return nil
}

func printSessionHelp(out io.Writer, commands map[string]*cobra.Command) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-45s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintf(out, "\n  %-45s %s\n", "help", "Show this help message")
	fmt.Fprintf(out, "  %-45s %s\n\n", "exit, quit", "Exit the interactive session")
}
