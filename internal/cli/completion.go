package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "radix")
	Short     string   // short flag without "-" (e.g., "e")
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value in zsh (e.g., "duration")
	IsFile    bool     // the flag takes a file path
	IsOp      bool     // the flag takes an expression starting with an operation
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "expr", Short: "e", Help: "Expression to evaluate", IsOp: true, ValueName: "expression"},
	{Long: "interactive", Short: "i", Help: "Start the interactive REPL"},
	{Long: "verify", Help: "Cross-check a division with every strategy", ValueName: "operands"},
	{Long: "serve", Help: "Serve the HTTP API on an address", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address"},
	{Long: "radix", Help: "Radix for operands and results", Values: []string{"2", "8", "10", "16", "36", "62"}, ValueName: "radix"},
	{Long: "strategy", Help: "Division strategy", Values: []string{"auto", "native", "binary", "long"}, ValueName: "strategy"},
	{Long: "timeout", Help: "Maximum duration of one evaluation", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "max-digits", Help: "Maximum digits per operand", ValueName: "digits"},
	{Long: "concurrency", Help: "Strategies verified in parallel", Values: []string{"1", "2", "3"}, ValueName: "count"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Print only the result"},
	{Long: "verbose", Short: "v", Help: "Print long results in full"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "tui", Help: "Show verification as a dashboard"},
	{Long: "log-level", Help: "Minimum log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out. ops lists
// the operation names offered as the first word of an expression.
func GenerateCompletion(out io.Writer, shell string, ops []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(ops)
	case "zsh":
		script = zshCompletion(ops)
	case "fish":
		script = fishCompletion(ops)
	case "powershell", "ps":
		script = powerShellCompletion(ops)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagNames returns the dash-prefixed spellings of f, short first.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	return names
}

func bashCompletion(ops []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsOp:
			body = `COMPREPLY=( $(compgen -W "${operations}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for infcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_infcalc_completions() {
    local cur prev opts operations
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    operations="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -W "${operations}" -- "${cur}") )
}

complete -F _infcalc_completions infcalc
`, strings.Join(opts, " "), strings.Join(ops, " "), cases.String())
}

func zshCompletion(ops []string) string {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	args = append(args, "        '1:operation:($operations)'", "        '*:operand:'")

	return fmt.Sprintf(`#compdef infcalc

# Zsh completion script for infcalc
# Add this to your ~/.zshrc or place in $fpath

_infcalc() {
    local -a operations
    operations=(%s)

    _arguments -s \
%s
}

_infcalc "$@"
`, strings.Join(ops, " "), strings.Join(args, " \\\n"))
}

// zshArgEntry formats f as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsOp:
		valueSuffix = fmt.Sprintf(":%s:($operations)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func fishCompletion(ops []string) string {
	opList := strings.Join(ops, " ")
	lines := []string{
		"# Fish completion script for infcalc",
		"# Add this to ~/.config/fish/completions/infcalc.fish",
		"",
		"complete -c infcalc -f",
		fmt.Sprintf("complete -c infcalc -n '__fish_use_subcommand' -a '%s'", opList),
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, opList))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats f as a fish complete command.
func fishCompleteLine(f FlagCompletion, opList string) string {
	parts := []string{"complete -c infcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsOp:
		parts = append(parts, fmt.Sprintf("-xa '%s'", opList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func powerShellCompletion(ops []string) string {
	var options, switches []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}

		var values string
		switch {
		case f.IsOp:
			values = "$infcalcOperations"
		case len(f.Values) > 0 && !f.IsFile:
			values = "@(" + psList(f.Values) + ")"
		default:
			continue
		}
		switches = append(switches, fmt.Sprintf(`        { $_ -in @(%s) } {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, psList(flagNames(f)), values))
	}

	return fmt.Sprintf(`# PowerShell completion script for infcalc
# Add this to your $PROFILE

$infcalcOperations = @(%s)

Register-ArgumentCompleter -CommandName 'infcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    if ($wordToComplete -notlike '-*') {
        $infcalcOperations | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psList(ops), strings.Join(options, "\n"), strings.Join(switches, "\n"))
}

// psList renders values as a quoted PowerShell list.
func psList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
