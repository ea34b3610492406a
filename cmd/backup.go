package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// --- Export Command ---

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the full ledger as a backup document" }
func (*exportCmd) Usage() string {
	return `fin export [-o <file>]

  Writes the full ledger snapshot as one JSON document, to stdout or to the
  given file. The output is exactly what 'fin import' accepts.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}

	out := os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}
	if err := store.Export(out); err != nil {
		return fail(err)
	}
	if c.output != "" {
		fmt.Printf("Exported ledger to %s\n", c.output)
	}
	return subcommands.ExitSuccess
}

// --- Import Command ---

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger from a backup document" }
func (*importCmd) Usage() string {
	return `fin import -i <file>

  Replaces the whole ledger with the backup document. The document is
  checked first; an invalid file leaves the current ledger untouched.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Backup file to import")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	file, err := os.Open(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.Import(file); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported ledger from %s\n", c.input)
	return subcommands.ExitSuccess
}

// --- Reset Command ---

type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "wipe the ledger back to its defaults" }
func (*resetCmd) Usage() string {
	return `fin reset [-f]

  Wipes all ledger data and restores the default settings. Asks for
  confirmation unless -f is given.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "Do not ask for confirmation")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		fmt.Print("This wipes all ledger data. Type 'yes' to continue: ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted.")
			return subcommands.ExitSuccess
		}
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	store.Reset()
	fmt.Println("Ledger reset.")
	return subcommands.ExitSuccess
}
