package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanoenum/nanoenum"
	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
	"github.com/arthur-debert/nanoenum/nanoenum/export"
	"github.com/arthur-debert/nanoenum/nanoenum/shape"
)

func (cli *CLI) addDefineCommand() {
	cmd := &cobra.Command{
		Use:   "define <name> <member>...",
		Short: "Define an enumeration and store it in the catalog",
		Long: `Define a new enumeration. Members are given either as plain names,
indexed by position, or all as Name=Index pairs.

The --policy, --offset and --id-template flags set how indices and ids are
assigned. With --from-json the whole definition is read as a JSON array of
arguments, for instance the output of 'nanoenum show <name> --format json'
("-" reads standard input).

Examples:
  nanoenum define Rank Ensign Lieutenant Commander --policy SERIES --offset 1
  nanoenum define Alert Green=0 Yellow=10 Red=20
  nanoenum show Galaxy -f json | nanoenum define --from-json - -c other.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.executeDefineCommand(cmd, args)
		},
	}
	cmd.Flags().String("from-json", "", `JSON array of definition arguments ("-" reads stdin)`)
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) executeDefineCommand(cmd *cobra.Command, args []string) error {
	const op = "define enumeration"

	fromJSON, _ := cmd.Flags().GetString("from-json")
	defineArgs, err := definitionArgs(cmd.InOrStdin(), fromJSON, args)
	if err != nil {
		return err
	}

	s, err := cli.openSession(op)
	if err != nil {
		return err
	}
	defer s.close()

	enum, err := s.engine.New(defineArgs...)
	if err != nil {
		return NewCatalogError(op, err)
	}
	entry, err := s.catalog.AddEnumeration(enum)
	if err != nil {
		return NewCatalogError(op, err, CommonSuggestions.CheckCatalog)
	}

	cli.logger.Info("enumeration defined",
		"name", enum.Name(),
		"policy", enum.Policy(),
		"members", enum.Len(),
		"uuid", entry.UUID)
	return cli.output(cmd, enumResult{enum})
}

// definitionArgs builds the engine arguments from --from-json or from a
// name followed by member specs
func definitionArgs(stdin io.Reader, fromJSON string, args []string) ([]any, error) {
	const op = "define enumeration"

	if fromJSON != "" {
		if len(args) > 0 {
			return nil, NewValidationError(op, "arguments", strings.Join(args, " "),
				"Positional arguments cannot be combined with --from-json")
		}
		raw := []byte(fromJSON)
		if fromJSON == "-" {
			var err error
			if raw, err = io.ReadAll(stdin); err != nil {
				return nil, WrapError(op, err)
			}
		}
		var out []any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, &CLIError{
				Operation:   op,
				Cause:       "definition is not a JSON array",
				Details:     err.Error(),
				Suggestions: []string{`Expected e.g. ["Galaxy", ["Enterprise", "Yamato"]]`},
				Underlying:  err,
			}
		}
		return out, nil
	}

	if len(args) < 2 {
		return nil, &CLIError{
			Operation:   op,
			Cause:       "a name and at least one member are required",
			Suggestions: []string{CommonSuggestions.RunHelp},
		}
	}
	label, err := parseMembers(args[1:])
	if err != nil {
		return nil, err
	}
	return []any{args[0], label}, nil
}

// parseMembers reads "Name" or "Name=Index" specs. Mixing both forms is
// rejected since positional and supplied indices cannot share a label.
func parseMembers(specs []string) (any, error) {
	const op = "define enumeration"

	if !strings.Contains(specs[0], "=") {
		for _, spec := range specs {
			if strings.Contains(spec, "=") {
				return nil, NewValidationError(op, "member", spec,
					"Give every member as Name, or every member as Name=Index")
			}
		}
		return specs, nil
	}

	m := shape.NewMap()
	for _, spec := range specs {
		name, rawIndex, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, NewValidationError(op, "member", spec,
				"Give every member as Name, or every member as Name=Index")
		}
		index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
		if err != nil || index < 0 {
			return nil, NewValidationError(op, "index", rawIndex, "Indices are non-negative integers")
		}
		if _, dup := m.Get(name); dup {
			return nil, NewValidationError(op, "member", name, "Each member name can appear only once")
		}
		m.Set(name, index)
	}
	return m, nil
}

func (cli *CLI) addListCommand() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the enumerations stored in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cli.openCatalog()
			defer func() { _ = c.Close() }()
			entries, err := c.List()
			if err != nil {
				return NewCatalogError("list enumerations", err, CommonSuggestions.CheckCatalog)
			}
			return cli.output(cmd, newListResult(entries))
		},
	}
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) addShowCommand() {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the members of an enumeration",
		Long: `Show the members of an enumeration with their index and id.

Examples:
  nanoenum show Galaxy
  nanoenum show Galaxy --format go   # Go type and constants
  nanoenum show IndexPolicy          # the built-in policy enumeration`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("show enumeration")
			if err != nil {
				return err
			}
			defer s.close()
			enum, err := s.lookup("show enumeration", args[0])
			if err != nil {
				return err
			}
			return cli.output(cmd, enumResult{enum})
		},
	}
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) addMaskCommand() {
	cmd := &cobra.Command{
		Use:   "mask <name> <member>...",
		Short: "Compute the bitmask of members",
		Long: `OR together the indices of the given members. Members are named or
given by index.

Examples:
  nanoenum mask Galaxy Enterprise Yamato   # 12
  nanoenum mask Galaxy 4 16                # 20`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "compute bitmask"
			s, err := cli.openSession(op)
			if err != nil {
				return err
			}
			defer s.close()
			enum, err := s.lookup(op, args[0])
			if err != nil {
				return err
			}

			operands := make([]any, 0, len(args)-1)
			for _, a := range args[1:] {
				if n, err := strconv.Atoi(a); err == nil {
					operands = append(operands, n)
				} else {
					operands = append(operands, a)
				}
			}
			mask, err := enum.Bitmask(operands...)
			if err != nil {
				return NewCatalogError(op, err)
			}
			return cli.output(cmd, maskResult{Type: enum.Name(), Members: args[1:], Mask: mask})
		},
	}
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) addDecodeCommand() {
	cmd := &cobra.Command{
		Use:   "decode <name> <mask>",
		Short: "List the members whose index bits are set in a mask",
		Long: `List the members whose index shares a bit with mask. The mask may
be written in decimal, hex (0x), octal (0o) or binary (0b).

Examples:
  nanoenum decode Galaxy 12
  nanoenum decode Galaxy 0b10100`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "decode bitmask"
			mask, err := strconv.ParseInt(args[1], 0, 0)
			if err != nil {
				return NewValidationError(op, "mask", args[1], "Give the mask as an integer, e.g. 12 or 0x0c")
			}
			s, err := cli.openSession(op)
			if err != nil {
				return err
			}
			defer s.close()
			enum, err := s.lookup(op, args[0])
			if err != nil {
				return err
			}
			return cli.output(cmd, newDecodeResult(enum, int(mask)))
		},
	}
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) addClassifyCommand() {
	cmd := &cobra.Command{
		Use:   "classify <index>...",
		Short: "Report the index policy a sequence of indices follows",
		Long: `Classify a sequence of indices as BINARY (consecutive powers of two),
SERIES (consecutive integers) or AUTO, together with the start offset.

Examples:
  nanoenum classify 4 8 16    # BINARY, offset 2
  nanoenum classify 3 4 5     # SERIES, offset 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			indices := make([]int, 0, len(args))
			for _, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return NewValidationError("classify indices", "index", a, "Indices are integers")
				}
				indices = append(indices, n)
			}
			c := nanoenum.Classify(indices)
			return cli.output(cmd, classifyResult{Indices: indices, Policy: c.Policy, StartOffset: c.StartOffset})
		},
	}
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) addDeleteCommand() {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove an enumeration from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "delete enumeration"
			c := cli.openCatalog()
			defer func() { _ = c.Close() }()
			if err := c.Delete(args[0]); err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					entries, _ := c.List()
					names := make([]string, 0, len(entries))
					for _, e := range entries {
						names = append(names, e.Name)
					}
					return NewNotFoundError(op, args[0], names)
				}
				return NewCatalogError(op, err, CommonSuggestions.CheckCatalog)
			}
			cli.logger.Info("enumeration deleted", "name", args[0])
			return cli.output(cmd, deleteResult{Deleted: args[0]})
		},
	}
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) addExportCommand() {
	cmd := &cobra.Command{
		Use:   "export [name]...",
		Short: "Write enumerations to a zip archive",
		Long: `Export the named enumerations, or all of them, to a zip archive holding
catalog.json and one JSON file per enumeration. Without --output the
archive is written to a new temporary directory.

Examples:
  nanoenum export -o fleet.zip
  nanoenum export Galaxy Rank -o ships.zip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "export enumerations"
			c := cli.openCatalog()
			defer func() { _ = c.Close() }()
			options := export.ExportOptions{Names: args}

			metadata, err := export.GetExportMetadata(c, options)
			if err != nil {
				return NewCatalogError(op, err, CommonSuggestions.CheckCatalog)
			}

			outputPath, _ := cmd.Flags().GetString("output")
			if outputPath == "" {
				outputPath, err = export.Export(c, options)
			} else {
				err = export.ExportToPath(c, options, outputPath)
			}
			if err != nil {
				return NewCatalogError(op, err, CommonSuggestions.CheckPerms)
			}

			names := make([]string, 0, len(metadata.Enumerations))
			for _, e := range metadata.Enumerations {
				names = append(names, e.Name)
			}
			cli.logger.Info("catalog exported", "path", outputPath, "enumerations", len(names))
			return cli.output(cmd, exportResult{Path: outputPath, Enumerations: names})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Archive path (default: a new temporary directory)")
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) addImportCommand() {
	cmd := &cobra.Command{
		Use:   "import <archive>...",
		Short: "Add the enumerations of export archives to the catalog",
		Long: `Import one or more archives written by export. Enumerations whose
name is already in the catalog are skipped and reported.

Examples:
  nanoenum import fleet.zip
  nanoenum import ships.zip alerts.zip -c merged.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const op = "import archives"
			c := cli.openCatalog()
			defer func() { _ = c.Close() }()
			before, err := c.List()
			if err != nil {
				return NewCatalogError(op, err, CommonSuggestions.CheckCatalog)
			}

			skipped, err := export.ImportAll(cmd.Context(), c, args)
			if err != nil {
				return NewCatalogError(op, err, "Verify the archives were written by 'nanoenum export'")
			}

			after, err := c.List()
			if err != nil {
				return NewCatalogError(op, err, CommonSuggestions.CheckCatalog)
			}
			imported := make([]string, 0, len(after)-len(before))
			for _, e := range after[len(before):] {
				imported = append(imported, e.Name)
			}

			cli.logger.Info("archives imported", "archives", len(args), "imported", len(imported), "skipped", len(skipped))
			return cli.output(cmd, importResult{Archives: args, Imported: imported, Skipped: skipped})
		},
	}
	cli.rootCmd.AddCommand(cmd)
}

func (cli *CLI) addConfigCommand() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: fmt.Sprintf(`Show the effective configuration after merging flags, NANOENUM_*
environment variables and the config file.

Keys: %s, %s, %s, %s, %s, %s, %s`,
			keyCatalog, keyFormat, keyPolicy, keyOffset, keyIDTemplate, keyLogLevel, keyVerbose),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cli.engineDefaults(); err != nil {
				return err
			}
			result := configResult{"config-file": cli.viperInst.ConfigFileUsed()}
			for _, key := range []string{keyCatalog, keyFormat, keyPolicy, keyOffset, keyIDTemplate, keyLogLevel, keyVerbose} {
				result[key] = cli.viperInst.Get(key)
			}
			return cli.output(cmd, result)
		},
	}
	cli.rootCmd.AddCommand(cmd)
}
