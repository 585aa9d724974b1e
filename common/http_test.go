package common

import (
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachment(t *testing.T) {
	tests := []string{
		"jane-doe.pdf",
		"Jane_Doe.vcf",
		`Jane_"JJ"_Doe.vcf`,
		"José_Álvarez.vcf",
		"a;b=c.vcf",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			disposition, params, err := mime.ParseMediaType(Attachment(name))
			require.NoError(t, err)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, name, params["filename"])
		})
	}
}
