package theorem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/premiselab/premise/pkg/theorem"
)

var _ = Describe("Normalize", func() {
	It("collapses whitespace runs", func() {
		n := theorem.Normalize(theorem.Theorem{Conclusion: "  (=  a\n\tb) "})
		Expect(n.Conclusion).To(Equal("(= a b)"))
	})

	It("leaves already-normalized conclusions untouched", func() {
		n := theorem.Normalize(theorem.Theorem{Conclusion: "(v A x)"})
		Expect(n.Conclusion).To(Equal("(v A x)"))
	})

	It("renumbers generated variables by first appearance", func() {
		n := theorem.Normalize(theorem.Theorem{
			Conclusion: "(= GEN%PVAR%3920 (f GEN%PVAR%17 GEN%PVAR%3920))",
		})
		Expect(n.Conclusion).To(Equal("(= GEN%PVAR%0 (f GEN%PVAR%1 GEN%PVAR%0))"))
	})

	It("gives equal conclusions for numbering-equivalent theorems", func() {
		a := theorem.Normalize(theorem.Theorem{Conclusion: "(f GEN%PVAR%1 GEN%PVAR%2)"})
		b := theorem.Normalize(theorem.Theorem{Conclusion: "(f GEN%PVAR%40 GEN%PVAR%7)"})
		Expect(a.Conclusion).To(Equal(b.Conclusion))
	})
})
