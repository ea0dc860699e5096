package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v4"
)

// Login messages look like "Login to Web3 University:<unix-ms>"; the
// timestamp keeps signatures from being replayed later.
var loginMessageRe = regexp.MustCompile(`Login to Web3 University:(\d+)`)

const loginMaxSkew = 5 * time.Minute

type AuthService struct {
	users     *UserService
	jwtSecret string
}

func NewAuthService(users *UserService, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

type LoginInput struct {
	WalletAddress string
	Message       string
	Signature     string
}

// Login verifies a personal_sign signature over a fresh login message and
// returns a 24h JWT. The user row is created on first login.
func (s *AuthService) Login(input LoginInput) (string, error) {
	if s.jwtSecret == "" {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}

	if err := checkMessageFresh(input.Message); err != nil {
		return "", err
	}

	recovered, err := RecoverSigner(input.Message, input.Signature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !strings.EqualFold(recovered, input.WalletAddress) {
		return "", fmt.Errorf("%w: signature does not match wallet address", ErrUnauthorized)
	}

	user, err := s.users.EnsureUser(input.WalletAddress)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"wallet_address": user.WalletAddress,
		"role":           user.Role,
		"exp":            time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// RecoverSigner recovers the address that produced a personal_sign signature
// over message.
func RecoverSigner(message, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", fmt.Errorf("malformed signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	// Wallets produce V as 27/28; the recovery code wants 0/1.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pubKey).Hex(), nil
}

func checkMessageFresh(message string) error {
	match := loginMessageRe.FindStringSubmatch(message)
	if match == nil {
		return fmt.Errorf("%w: login message must contain a timestamp, e.g. \"Login to Web3 University:<timestamp>\"", ErrUnauthorized)
	}
	ts, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid login message timestamp", ErrUnauthorized)
	}

	skew := math.Abs(float64(time.Now().UnixMilli() - ts))
	if time.Duration(skew)*time.Millisecond > loginMaxSkew {
		return fmt.Errorf("%w: login message expired or clock skew too large", ErrUnauthorized)
	}
	return nil
}
