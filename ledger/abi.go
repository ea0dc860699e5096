package ledger

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const courseRegistryABI = `[
	{"type":"function","name":"createCourse","stateMutability":"nonpayable","inputs":[{"name":"courseId","type":"string"},{"name":"teacher","type":"address"},{"name":"priceYD","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"updateCourseStatus","stateMutability":"nonpayable","inputs":[{"name":"courseId","type":"string"},{"name":"newStatus","type":"uint8"}],"outputs":[]},
	{"type":"function","name":"courseExists","stateMutability":"view","inputs":[{"name":"courseId","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"isCourseActive","stateMutability":"view","inputs":[{"name":"courseId","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getCourse","stateMutability":"view","inputs":[{"name":"courseId","type":"string"}],"outputs":[{"name":"","type":"tuple","components":[{"name":"courseId","type":"string"},{"name":"teacher","type":"address"},{"name":"priceYD","type":"uint256"},{"name":"status","type":"uint8"},{"name":"totalPurchases","type":"uint256"},{"name":"createdAt","type":"uint256"},{"name":"updatedAt","type":"uint256"}]}]}
]`

const coursePlatformABI = `[
	{"type":"function","name":"hasPurchased","stateMutability":"view","inputs":[{"name":"student","type":"address"},{"name":"courseId","type":"string"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"completeCourse","stateMutability":"nonpayable","inputs":[{"name":"student","type":"address"},{"name":"courseId","type":"string"},{"name":"metadataURI","type":"string"}],"outputs":[]},
	{"type":"function","name":"awardTeacherBadge","stateMutability":"nonpayable","inputs":[{"name":"courseId","type":"string"},{"name":"ratingScore","type":"uint8"},{"name":"metadataURI","type":"string"}],"outputs":[]}
]`

const studentCertificateABI = `[
	{"type":"function","name":"hasCertificate","stateMutability":"view","inputs":[{"name":"student","type":"address"},{"name":"courseId","type":"string"}],"outputs":[{"name":"","type":"bool"}]}
]`

const teacherBadgeABI = `[
	{"type":"function","name":"hasBadge","stateMutability":"view","inputs":[{"name":"teacher","type":"address"},{"name":"courseId","type":"string"}],"outputs":[{"name":"","type":"bool"}]}
]`

var (
	registryABI    = mustParseABI(courseRegistryABI)
	platformABI    = mustParseABI(coursePlatformABI)
	certificateABI = mustParseABI(studentCertificateABI)
	badgeABI       = mustParseABI(teacherBadgeABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
