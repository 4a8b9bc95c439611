package web

import "embed"

//go:embed *.css *.js
var StaticContent embed.FS

//go:embed *.tmpl
var StaticTemplates embed.FS
