package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hightemp/isocountry/internal/index"
	"github.com/hightemp/isocountry/internal/output"
	"github.com/hightemp/isocountry/internal/query"
	"github.com/hightemp/isocountry/internal/snapshot"
)

var (
	lookupName    string
	lookupCapital string
	lookupRegion  string
	lookupAlpha2  string
	lookupAlpha3  string
	lookupBy      string
	lookupTime    string
	lookupJSON    bool
)

// lookupFlags binds each query flag to the table it searches.
var lookupFlags = []struct {
	name  string
	kind  index.Kind
	value *string
}{
	{"name", index.KindName, &lookupName},
	{"capital", index.KindCapital, &lookupCapital},
	{"region", index.KindRegion, &lookupRegion},
	{"alpha2", index.KindAlpha2, &lookupAlpha2},
	{"alpha3", index.KindAlpha3, &lookupAlpha3},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up countries in a snapshot",
	Long: `Looks up countries by name, capital, region or ISO 3166-1 code.

For a single query pass one of --name, --capital, --region, --alpha2 or
--alpha3. Without one, keys are read from stdin, one per line, and
searched in the table selected by --by. The latest snapshot is used
unless --time names another one.

Examples:
  isogen lookup --name India
  isogen lookup --region Asia --json
  isogen lookup --time 2026-01-15 --alpha3 GBR
  printf 'IN\nPK\n' | isogen lookup --by alpha2`,
	Args: cobra.NoArgs,
	RunE: runLookup,
}

func init() {
	for _, f := range lookupFlags {
		lookupCmd.Flags().StringVar(f.value, f.name, "", "look up by "+string(f.kind))
	}
	lookupCmd.Flags().StringVar(&lookupBy, "by", string(index.KindName), "table searched for keys read from stdin")
	lookupCmd.Flags().StringVar(&lookupTime, "time", "", "use snapshot for specific date (YYYY-MM-DD)")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output in JSON format")
}

func runLookup(cmd *cobra.Command, args []string) error {
	kind, key, single, err := selectedQuery(cmd)
	if err != nil {
		return withCode(ExitInvalidInput, err)
	}
	if !single && isTerminal(cmd.InOrStdin()) {
		// stdin is a terminal, show help
		return cmd.Help()
	}

	src, label, snapshotTime, err := openSource()
	if err != nil {
		return err
	}
	p := query.NewProcessor(src, kind, label, snapshotTime)

	if !single {
		misses, err := p.ProcessInput(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), lookupJSON)
		if err != nil {
			return err
		}
		if misses > 0 {
			return withCode(ExitNotFound, fmt.Errorf("%d keys not found", misses))
		}
		return nil
	}

	result := p.Query(key)
	if lookupJSON {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), jsonStr)
	} else if result.Error == "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.FormatText())
	} else if hint := output.FormatSuggestions(result.Suggestions); hint != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), hint)
	}

	if result.Error != "" {
		return withCode(ExitNotFound, fmt.Errorf("no country with %s %q", kind, result.Query))
	}
	return nil
}

// selectedQuery returns the table and key of a single query, or the
// --by table when keys come from stdin.
func selectedQuery(cmd *cobra.Command) (index.Kind, string, bool, error) {
	var (
		kind  index.Kind
		key   string
		count int
	)
	for _, f := range lookupFlags {
		if cmd.Flags().Changed(f.name) {
			kind, key = f.kind, *f.value
			count++
		}
	}

	switch count {
	case 0:
		k, err := index.ParseKind(lookupBy)
		return k, "", false, err
	case 1:
		return kind, key, true, nil
	}
	return "", "", false, errors.New("only one of --name, --capital, --region, --alpha2 and --alpha3 may be given")
}

// openSource loads the snapshot for --time, or the latest snapshot.
func openSource() (query.Source, string, string, error) {
	mgr := snapshot.NewManager(cfg.CacheDir)
	var (
		dir  string
		meta *snapshot.Metadata
		err  error
	)
	if lookupTime != "" {
		dir, meta, err = mgr.GetSnapshotByDate(lookupTime)
	} else {
		dir, meta, err = mgr.GetLatestSnapshot()
	}
	if err != nil {
		return nil, "", "", withCode(ExitNoSnapshot, err)
	}

	idx, err := mgr.LoadIndex(dir)
	if err != nil {
		return nil, "", "", withCode(ExitNoSnapshot, fmt.Errorf("load index: %w", err))
	}

	date := meta.Date
	if date == "" {
		date = filepath.Base(dir)
	}
	return idx, "snapshot", date, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r interface{}) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
