package mailer

import (
	"bytes"
	"html/template"
)

// Activation email body. Inlined rather than a named view because it is the
// only mail the application sends.
var activationTemplate = template.Must(template.New("acc_activate").Parse(`<p>Hi {{.Username}},</p>
<p>Please click the link below to confirm your registration:</p>
<p><a href="{{.BaseURL}}/activate/{{.UID}}/{{.Token}}/">Activate your account</a></p>
<p>If you did not register, you can ignore this message.</p>
`))

// ActivationEmail holds the values interpolated into the activation message.
type ActivationEmail struct {
	Username string
	BaseURL  string
	UID      string
	Token    string
}

// RenderActivation produces the HTML body of the activation email.
func RenderActivation(data ActivationEmail) (string, error) {
	var buf bytes.Buffer
	if err := activationTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
