package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "run a JSONPath query against the ledger snapshot" }
func (*queryCmd) Usage() string {
	return `fin query <jsonpath>

  Evaluates a JSONPath expression against the full ledger document and
  prints the result as JSON.

Usage Examples:
# Names of all tracked loans.
$ fin query '$.loans[*].name'

# Expenses above 1000.
$ fin query '$.expenses[?(@.amount > 1000)]'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	store, err := openStore()
	if err != nil {
		return fail(err)
	}

	// Query the same document the backup format produces, so paths match
	// what users see in an export.
	var doc bytes.Buffer
	if err := store.Export(&doc); err != nil {
		return fail(err)
	}
	var jobj any
	if err := json.Unmarshal(doc.Bytes(), &jobj); err != nil {
		return fail(err)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", path, err)
		return subcommands.ExitUsageError
	}

	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		return fail(err)
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}
