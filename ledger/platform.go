package ledger

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// HasPurchased reports whether the student has bought the course on chain.
func (c *Client) HasPurchased(ctx context.Context, student, courseID string) (bool, error) {
	if !common.IsHexAddress(student) {
		return false, fmt.Errorf("invalid student address %q", student)
	}
	values, err := c.call(ctx, c.platformAddr, platformABI, "hasPurchased", common.HexToAddress(student), courseID)
	if err != nil {
		return false, err
	}
	purchased, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected hasPurchased result type %T", values[0])
	}
	return purchased, nil
}

// HasCertificate reports whether a completion certificate was already minted
// for the student and course.
func (c *Client) HasCertificate(ctx context.Context, student, courseID string) (bool, error) {
	if !common.IsHexAddress(student) {
		return false, fmt.Errorf("invalid student address %q", student)
	}
	values, err := c.call(ctx, c.certificateAddr, certificateABI, "hasCertificate", common.HexToAddress(student), courseID)
	if err != nil {
		return false, err
	}
	minted, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected hasCertificate result type %T", values[0])
	}
	return minted, nil
}

// CompleteCourse mints the completion certificate for a student. The
// purchase and duplicate-certificate guards run before any gas is spent.
func (c *Client) CompleteCourse(ctx context.Context, student, courseID, metadataURI string) (*TxResult, error) {
	purchased, err := c.HasPurchased(ctx, student, courseID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, fmt.Errorf("%w: student %s, course %s", ErrNotPurchased, student, courseID)
	}

	minted, err := c.HasCertificate(ctx, student, courseID)
	if err != nil {
		return nil, err
	}
	if minted {
		return nil, fmt.Errorf("%w: student %s, course %s", ErrCertificateExists, student, courseID)
	}

	data, err := platformABI.Pack("completeCourse", common.HexToAddress(student), courseID, metadataURI)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completeCourse call: %w", err)
	}
	return c.transact(ctx, c.platformAddr, 0, data)
}

// AwardTeacherBadge mints a badge NFT for the course's teacher.
func (c *Client) AwardTeacherBadge(ctx context.Context, teacher, courseID string, ratingScore uint8, metadataURI string) (*TxResult, error) {
	if !common.IsHexAddress(teacher) {
		return nil, fmt.Errorf("invalid teacher address %q", teacher)
	}

	values, err := c.call(ctx, c.badgeAddr, badgeABI, "hasBadge", common.HexToAddress(teacher), courseID)
	if err != nil {
		return nil, err
	}
	if awarded, ok := values[0].(bool); ok && awarded {
		return nil, fmt.Errorf("%w: teacher %s, course %s", ErrBadgeExists, teacher, courseID)
	}

	data, err := platformABI.Pack("awardTeacherBadge", courseID, ratingScore, metadataURI)
	if err != nil {
		return nil, fmt.Errorf("failed to encode awardTeacherBadge call: %w", err)
	}
	return c.transact(ctx, c.platformAddr, 0, data)
}
