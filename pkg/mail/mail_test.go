package mail_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velora-shop/velora/pkg/mail"
)

func TestBuilderAndSenderSwap(t *testing.T) {
	var delivered *mail.Message
	prev := mail.SetSender(func(m *mail.Message) error {
		delivered = m
		return nil
	})
	t.Cleanup(func() { mail.SetSender(prev) })

	err := mail.To("a@example.com").
		CC("b@example.com").
		BCC("c@example.com").
		Subject("Hello").
		Body("<p>Hi</p>").
		Send()
	require.NoError(t, err)
	require.NotNil(t, delivered)

	assert.ElementsMatch(t,
		[]string{"a@example.com", "b@example.com", "c@example.com"},
		delivered.Recipients())
	assert.Equal(t, "Hello", delivered.SubjectLine())
	assert.Equal(t, "<p>Hi</p>", delivered.HTML())
}

func TestTemplateString(t *testing.T) {
	m := mail.To("a@example.com").
		TemplateString("<b>Hi {{.Name}}</b>", struct{ Name string }{"Ada"})
	assert.Equal(t, "<b>Hi Ada</b>", m.HTML())
}

func TestTemplateStringEscapesHTML(t *testing.T) {
	m := mail.To("a@example.com").
		TemplateString("{{.Input}}", struct{ Input string }{"<script>"})
	assert.NotContains(t, m.HTML(), "<script>")
}
