package export

import "html/template"

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Number}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
.total { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}} {{.Number}}</h1>
<p>Date: {{.Issued.Format "2006-01-02"}}</p>
{{range .Sections}}
<h2>{{.Title}}</h2>
<dl>
{{range .Fields}}{{if .Value}}<dt>{{.Label}}</dt><dd>{{.Value}}</dd>
{{end}}{{end}}</dl>
{{end}}
<table>
<tr><th>Item</th><th>Qty</th><th>Rate</th><th>Tax</th><th>Amount</th></tr>
{{range .Lines}}
<tr>
<td>{{.Name}}</td>
<td>{{printf "%g" .Quantity}}</td>
<td>{{.UnitPrice.StringFixed 2}}</td>
<td>{{.Tax.StringFixed 2}}</td>
<td>{{.Amount.StringFixed 2}}</td>
</tr>
{{end}}
<tr class="total"><td colspan="4">Total ({{.Currency}})</td><td>{{.Total.StringFixed 2}}</td></tr>
</table>
</body>
</html>
`))
