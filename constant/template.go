package constant

// ChaptersTemplate is a Go text/template for scaffolding a new chapter document.
const ChaptersTemplate = `# {{ .Title }}
# Generated by {{ .App }} {{ .Version }}. Timecodes use the deep-link grammar: [HH:]MM:SS[.mmm]
permalink: {{ .Permalink }}
chapters:
  - start: "00:00"
    title: Intro
  - start: "{{ .Second }}"
    title: Main part
`
