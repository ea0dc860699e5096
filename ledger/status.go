package ledger

import (
	"fmt"

	"github.com/anjiri1684/web3_university/models"
)

// Course status codes used by the CourseRegistry contract.
const (
	statusCodeDraft     uint8 = 0
	statusCodePublished uint8 = 1
	statusCodeArchived  uint8 = 2
)

func StatusCode(status models.CourseStatus) (uint8, error) {
	switch status {
	case models.CourseStatusDraft:
		return statusCodeDraft, nil
	case models.CourseStatusPublished:
		return statusCodePublished, nil
	case models.CourseStatusArchived:
		return statusCodeArchived, nil
	}
	return 0, fmt.Errorf("unknown course status %q", status)
}

func StatusFromCode(code uint8) (models.CourseStatus, error) {
	switch code {
	case statusCodeDraft:
		return models.CourseStatusDraft, nil
	case statusCodePublished:
		return models.CourseStatusPublished, nil
	case statusCodeArchived:
		return models.CourseStatusArchived, nil
	}
	return "", fmt.Errorf("unknown on-chain status code %d", code)
}
