package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("JWTTokenGenerator", func() {
	var generator *JWTTokenGenerator

	ginkgo.BeforeEach(func() {
		var err error
		generator, err = NewJWTTokenGenerator("secret", "HS256", 30*time.Minute)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.It("round-trips the subject and sets expiry from the ttl", func() {
		issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		generator.now = func() time.Time { return issuedAt }

		token, err := generator.GenerateAccessToken("user@example.com")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		claims, err := generator.ValidateToken(token)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(claims.Subject).To(gomega.Equal("user@example.com"))
		gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("==", issuedAt.Add(30*time.Minute)))
	})

	ginkgo.It("rejects an expired token", func() {
		issuedAt := time.Now().Add(-time.Hour)
		generator.now = func() time.Time { return issuedAt }
		token, err := generator.GenerateAccessToken("user@example.com")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		generator.now = time.Now
		_, err = generator.ValidateToken(token)
		gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
	})

	ginkgo.It("rejects a token signed with another secret", func() {
		other, _ := NewJWTTokenGenerator("other-secret", "HS256", time.Minute)
		token, _ := other.GenerateAccessToken("user@example.com")

		_, err := generator.ValidateToken(token)
		gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
	})

	ginkgo.It("rejects a token signed with a different algorithm", func() {
		other, _ := NewJWTTokenGenerator("secret", "HS512", time.Minute)
		token, _ := other.GenerateAccessToken("user@example.com")

		_, err := generator.ValidateToken(token)
		gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
	})

	ginkgo.It("rejects a token without a subject", func() {
		claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		_, err = generator.ValidateToken(token)
		gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
	})

	ginkgo.It("rejects a token without an expiry", func() {
		claims := jwt.RegisteredClaims{Subject: "user@example.com"}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))

		_, err := generator.ValidateToken(token)
		gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
	})

	ginkgo.DescribeTable("constructor validation",
		func(secret, alg string, ttl time.Duration) {
			_, err := NewJWTTokenGenerator(secret, alg, ttl)
			gomega.Expect(err).To(gomega.HaveOccurred())
		},
		ginkgo.Entry("empty secret", "", "HS256", time.Minute),
		ginkgo.Entry("asymmetric algorithm", "secret", "RS256", time.Minute),
		ginkgo.Entry("unknown algorithm", "secret", "none", time.Minute),
		ginkgo.Entry("zero ttl", "secret", "HS256", time.Duration(0)),
	)
})

var _ = ginkgo.Describe("Password hashing", func() {
	ginkgo.It("verifies the original password only", func() {
		hash, err := HashPassword("s3cret!", 4)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(hash).NotTo(gomega.Equal("s3cret!"))

		gomega.Expect(VerifyPassword(hash, "s3cret!")).To(gomega.Succeed())
		gomega.Expect(VerifyPassword(hash, "other")).NotTo(gomega.Succeed())
	})

	ginkgo.It("salts every hash", func() {
		first, _ := HashPassword("same", 4)
		second, _ := HashPassword("same", 4)
		gomega.Expect(first).NotTo(gomega.Equal(second))
	})
})
