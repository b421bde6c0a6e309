package credential

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var s *Store

	BeforeEach(func() {
		var err error
		s, err = NewStore("aa")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should refuse an empty initial secret", func() {
		_, err := NewStore("")

		Expect(err).To(MatchError(ErrEmptyCredential))
	})

	It("should validate the exact secret only", func() {
		Expect(s.Validate("aa")).To(BeTrue())
		Expect(s.Validate("AA")).To(BeFalse())
		Expect(s.Validate("aa ")).To(BeFalse())
		Expect(s.Validate("")).To(BeFalse())
	})

	It("should rotate the secret", func() {
		Expect(s.Rotate("aa", "bb")).To(Succeed())

		Expect(s.Validate("aa")).To(BeFalse())
		Expect(s.Validate("bb")).To(BeTrue())
	})

	It("should reject a rotation with the wrong old secret", func() {
		Expect(s.Rotate("Aa", "bb")).To(MatchError(ErrRejected))

		Expect(s.Validate("aa")).To(BeTrue())
		Expect(s.Validate("bb")).To(BeFalse())
	})

	It("should reject an empty new secret", func() {
		Expect(s.Rotate("aa", "")).To(MatchError(ErrRejected))

		Expect(s.Validate("aa")).To(BeTrue())
	})
})
