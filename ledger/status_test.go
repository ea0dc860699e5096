package ledger

import (
	"testing"

	"github.com/anjiri1684/web3_university/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeRoundTrip(t *testing.T) {
	for _, status := range []models.CourseStatus{
		models.CourseStatusDraft,
		models.CourseStatusPublished,
		models.CourseStatusArchived,
	} {
		code, err := StatusCode(status)
		require.NoError(t, err)

		back, err := StatusFromCode(code)
		require.NoError(t, err)
		assert.Equal(t, status, back)
	}
}

func TestStatusCodeOrdering(t *testing.T) {
	draft, _ := StatusCode(models.CourseStatusDraft)
	published, _ := StatusCode(models.CourseStatusPublished)
	archived, _ := StatusCode(models.CourseStatusArchived)

	assert.Equal(t, uint8(0), draft)
	assert.Equal(t, uint8(1), published)
	assert.Equal(t, uint8(2), archived)
}

func TestStatusCodeRejectsUnknown(t *testing.T) {
	_, err := StatusCode(models.CourseStatus("deleted"))
	assert.Error(t, err)

	_, err = StatusFromCode(3)
	assert.Error(t, err)
}
