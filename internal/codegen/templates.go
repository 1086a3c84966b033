package codegen

import (
	"strconv"
	"text/template"
)

const recordsTemplate = `// Code generated by isogen; DO NOT EDIT.

package {{.Package}}

import "{{.PHFImport}}"

// countries holds every record in source order.
var countries = [...]Country{
{{- range .Records}}
	{
		Name: {{quote .Name}},
		Capital: {{quote .Capital}},
		Region: {{quote .Region}},
		Alpha2: {{quote .Alpha2}},
		Alpha3: {{quote .Alpha3}},
		{{- with .Timezones}}
		Timezones: []Timezone{
			{{- range .}}
			{Offset: {{quote .Offset}}, Zone: {{quote .Zone}}},
			{{- end}}
		},
		{{- end}}
		{{- with .Currencies}}
		Currencies: []Currency{
			{{- range .}}
			{ {{- with .Code}}Code: {{quote .}}, {{end}}{{with .Name}}Name: {{quote .}}, {{end}}{{with .Symbol}}Symbol: {{quote .}}{{end -}} },
			{{- end}}
		},
		{{- end}}
		{{- with .Languages}}
		Languages: []Language{
			{{- range .}}
			{ {{- with .ISO639_1}}ISO639_1: {{quote .}}, {{end}}{{with .ISO639_2}}ISO639_2: {{quote .}}, {{end}}{{with .Name}}Name: {{quote .}}, {{end}}{{with .NativeName}}NativeName: {{quote .}}{{end -}} },
			{{- end}}
		},
		{{- end}}
		{{- with .CallCodes}}
		CallCodes: []string{ {{- range $i, $c := .}}{{if $i}}, {{end}}{{quote $c}}{{end -}} },
		{{- end}}
	},
{{- end}}
}

// names resolves a country name to its position in countries.
var names = phf.MustBuild([]string{
{{- range .Records}}
	{{quote .Name}},
{{- end}}
})

// FromName returns the country with the given name.
func FromName(name string) (Country, bool) {
	i, ok := names.Lookup(name)
	if !ok {
		return Country{}, false
	}
	return countries[i], true
}
`

const groupTemplate = `// Code generated by isogen; DO NOT EDIT.

//go:build !{{.Tag}}

package {{.Package}}

import "{{.PHFImport}}"

// {{.Var}} groups countries by {{.Doc}}.
var {{.Var}} = phf.NewMap([]string{
{{- range .Groups}}
	{{quote .Key}},
{{- end}}
}, [][]Country{
{{- range .Groups}}
	{ {{- range $j, $p := .Members}}{{if $j}}, {{end}}countries[{{$p}}]{{end -}} },
{{- end}}
})

// {{.Func}} returns the countries whose {{.Doc}} is {{.Param}}.
func {{.Func}}({{.Param}} string) ([]Country, bool) {
	return {{.Var}}.Get({{.Param}})
}
`

var templates = template.Must(
	template.Must(
		template.New("records").
			Funcs(template.FuncMap{"quote": strconv.Quote}).
			Parse(recordsTemplate),
	).New("group").Parse(groupTemplate),
)
