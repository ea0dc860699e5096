package ledger

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/anjiri1684/web3_university/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Status updates carry a fixed gas ceiling so a misestimated transaction
// fails immediately instead of hanging through the confirmation wait.
const statusUpdateGasLimit = 150_000

// Course is the registry's view of a course record.
type Course struct {
	CourseID       string
	Teacher        string
	PriceYD        float64
	Status         models.CourseStatus
	TotalPurchases uint64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CourseExists reports whether the registry holds a record for courseID.
// Read-only and safe to call before any write that assumes presence or
// absence.
func (c *Client) CourseExists(ctx context.Context, courseID string) (bool, error) {
	values, err := c.call(ctx, c.registryAddr, registryABI, "courseExists", courseID)
	if err != nil {
		return false, err
	}
	exists, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected courseExists result type %T", values[0])
	}
	return exists, nil
}

// IsCourseActive reports whether the registry record exists and is currently
// purchasable (registered and published).
func (c *Client) IsCourseActive(ctx context.Context, courseID string) (bool, error) {
	values, err := c.call(ctx, c.registryAddr, registryABI, "isCourseActive", courseID)
	if err != nil {
		return false, err
	}
	active, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected isCourseActive result type %T", values[0])
	}
	return active, nil
}

// GetCourse reads the full registry record for courseID.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	exists, err := c.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	values, err := c.call(ctx, c.registryAddr, registryABI, "getCourse", courseID)
	if err != nil {
		return nil, err
	}
	return decodeCourse(values[0])
}

// courseTuple mirrors the registry's getCourse return struct.
type courseTuple struct {
	CourseId       string
	Teacher        common.Address
	PriceYD        *big.Int
	Status         uint8
	TotalPurchases *big.Int
	CreatedAt      *big.Int
	UpdatedAt      *big.Int
}

func decodeCourse(raw interface{}) (*Course, error) {
	tuple := *abi.ConvertType(raw, new(courseTuple)).(*courseTuple)

	status, err := StatusFromCode(tuple.Status)
	if err != nil {
		return nil, err
	}

	return &Course{
		CourseID:       tuple.CourseId,
		Teacher:        tuple.Teacher.Hex(),
		PriceYD:        FromLedgerUnits(tuple.PriceYD),
		Status:         status,
		TotalPurchases: tuple.TotalPurchases.Uint64(),
		CreatedAt:      time.Unix(tuple.CreatedAt.Int64(), 0),
		UpdatedAt:      time.Unix(tuple.UpdatedAt.Int64(), 0),
	}, nil
}

// CreateCourse registers a course on the chain. The price crosses the
// boundary as an 18-decimal integer; zero and negative prices are rejected
// before submission.
func (c *Client) CreateCourse(ctx context.Context, courseID, teacher string, priceYD float64) (*TxResult, error) {
	if !common.IsHexAddress(teacher) {
		return nil, fmt.Errorf("invalid teacher address %q", teacher)
	}
	price, err := ToLedgerUnits(priceYD)
	if err != nil {
		return nil, err
	}

	exists, err := c.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: course %s", ErrAlreadyExists, courseID)
	}

	data, err := registryABI.Pack("createCourse", courseID, common.HexToAddress(teacher), price)
	if err != nil {
		return nil, fmt.Errorf("failed to encode createCourse call: %w", err)
	}
	return c.transact(ctx, c.registryAddr, 0, data)
}

// UpdateCourseStatus mirrors a status transition to the registry. A missing
// record fails with ErrCourseNotFound, which is the signal the coordinator
// uses to fall back to CreateCourse.
func (c *Client) UpdateCourseStatus(ctx context.Context, courseID string, status models.CourseStatus) (*TxResult, error) {
	code, err := StatusCode(status)
	if err != nil {
		return nil, err
	}

	exists, err := c.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: course %s", ErrCourseNotFound, courseID)
	}

	data, err := registryABI.Pack("updateCourseStatus", courseID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to encode updateCourseStatus call: %w", err)
	}
	return c.transact(ctx, c.registryAddr, statusUpdateGasLimit, data)
}

// CreateCourseWithStatus registers a course and, when publish is set, follows
// up with a publish transition. A publish failure after a successful
// registration returns the create result wrapped in *PublishFailedError so
// the caller can retry only the publish step.
func (c *Client) CreateCourseWithStatus(ctx context.Context, courseID, teacher string, priceYD float64, publish bool) (*TxResult, error) {
	created, err := c.CreateCourse(ctx, courseID, teacher, priceYD)
	if err != nil {
		return nil, err
	}
	if !publish {
		return created, nil
	}
	if _, err := c.UpdateCourseStatus(ctx, courseID, models.CourseStatusPublished); err != nil {
		return created, &PublishFailedError{Create: created, Err: err}
	}
	return created, nil
}
