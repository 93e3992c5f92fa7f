package bytecode

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"unicode"
)

var pluginNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

var dartTemplate = template.Must(template.New("dart").Parse(`// GENERATED CODE - DO NOT MODIFY BY HAND
// Bytecode of the {{.Name}} kraken plugin.

import 'dart:typed_data';

const String {{.Ident}}PluginName = '{{.Name}}';

final Uint8List {{.Ident}}ByteData = Uint8List.fromList(const <int>[
{{- range .Lines}}
  {{.}},
{{- end}}
]);
`))

// DartFormatter wraps bytecode in a Dart library exposing the plugin name
// and the bytecode as a Uint8List.
func DartFormatter(bytecode []byte, pluginName string) (string, error) {
	if !pluginNamePattern.MatchString(pluginName) {
		return "", fmt.Errorf("invalid plugin name %q: must start with a letter and contain only letters, digits, '_' or '-'", pluginName)
	}

	var sb strings.Builder
	err := dartTemplate.Execute(&sb, struct {
		Name  string
		Ident string
		Lines []string
	}{
		Name:  pluginName,
		Ident: dartIdent(pluginName),
		Lines: byteLines(bytecode, 16),
	})
	if err != nil {
		return "", fmt.Errorf("render dart: %w", err)
	}
	return sb.String(), nil
}

// dartIdent lower-camel-cases a plugin name: "kraken_video-player" becomes
// "krakenVideoPlayer".
func dartIdent(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	var sb strings.Builder
	for i, p := range parts {
		runes := []rune(p)
		if i == 0 {
			runes[0] = unicode.ToLower(runes[0])
		} else {
			runes[0] = unicode.ToUpper(runes[0])
		}
		sb.WriteString(string(runes))
	}
	return sb.String()
}

func byteLines(data []byte, perLine int) []string {
	var lines []string
	for i := 0; i < len(data); i += perLine {
		end := min(i+perLine, len(data))
		nums := make([]string, 0, end-i)
		for _, b := range data[i:end] {
			nums = append(nums, fmt.Sprint(b))
		}
		lines = append(lines, strings.Join(nums, ", "))
	}
	return lines
}
