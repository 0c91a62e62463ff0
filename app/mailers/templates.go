package mailers

// Inline HTML templates rendered through mail.TemplateString. Kept
// deliberately plain; styling the mails is out of scope.

const customerOrderTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Thanks for your order, {{.Name}}!</h2>
  <p>We received order <strong>#{{.Order.ID}}</strong> and will be in touch
  when it ships.</p>
  <table border="0" cellpadding="6" cellspacing="0">
    <tr><th align="left">Product</th><th align="left">Qty</th><th align="left">Size</th><th align="left">Color</th><th align="right">Price</th></tr>
    {{range .Order.Items}}
    <tr>
      <td>{{if .Product}}{{.Product.Name}}{{else}}#{{.ProductID}}{{end}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.Size}}</td>
      <td>{{.Color}}</td>
      <td align="right">{{printf "%.2f" .UnitPrice}}</td>
    </tr>
    {{end}}
  </table>
  <p><strong>Total: {{printf "%.2f" .Order.Total}}</strong></p>
  <p>Delivery to: {{.Order.Address}}, {{.Order.City}}, {{.Order.State}},
  {{.Order.Country}} {{.Order.PostCode}}</p>
</body>
</html>`

const ownerOrderTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>New order #{{.Order.ID}}</h2>
  <p>Placed by {{.Name}} ({{.Email}}), phone {{.Order.NumberOne}}{{if .Order.NumberTwo}} / {{.Order.NumberTwo}}{{end}}.</p>
  <table border="0" cellpadding="6" cellspacing="0">
    <tr><th align="left">Product</th><th align="left">Qty</th><th align="left">Size</th><th align="left">Color</th><th align="right">Price</th></tr>
    {{range .Order.Items}}
    <tr>
      <td>{{if .Product}}{{.Product.Name}}{{else}}#{{.ProductID}}{{end}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.Size}}</td>
      <td>{{.Color}}</td>
      <td align="right">{{printf "%.2f" .UnitPrice}}</td>
    </tr>
    {{end}}
  </table>
  <p><strong>Total: {{printf "%.2f" .Order.Total}}</strong></p>
  <p>Ship to: {{.Order.Address}}, {{.Order.City}}, {{.Order.State}},
  {{.Order.Country}} {{.Order.PostCode}}</p>
  {{if .Order.Description}}<p>Note: {{.Order.Description}}</p>{{end}}
</body>
</html>`

const passwordResetTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Password reset</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset your Velora password. The link below is
  valid for one hour:</p>
  <p><a href="{{.Link}}">Reset my password</a></p>
  <p>If you did not ask for this, you can safely ignore this email.</p>
</body>
</html>`

const lowStockTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Low stock report</h2>
  <p>The following products are running low:</p>
  <table border="0" cellpadding="6" cellspacing="0">
    <tr><th align="left">Product</th><th align="right">Remaining</th></tr>
    {{range .Products}}
    <tr><td>{{.Name}}</td><td align="right">{{.Quantity}}</td></tr>
    {{end}}
  </table>
</body>
</html>`
