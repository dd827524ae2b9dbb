package scorecmder

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewScoreCmd", func() {
	It("creates a command with correct use name", func() {
		cmd := NewScoreCmd()
		Expect(cmd.Use).To(Equal("score <goal>"))
	})

	It("has the expected flags", func() {
		cmd := NewScoreCmd()

		embeddingsFlag := cmd.Flags().Lookup("embeddings")
		Expect(embeddingsFlag).NotTo(BeNil())
		Expect(embeddingsFlag.Shorthand).To(Equal("e"))
		Expect(embeddingsFlag.DefValue).To(Equal("embeddings.emb"))

		indexFlag := cmd.Flags().Lookup("theorem-index")
		Expect(indexFlag).NotTo(BeNil())
		Expect(indexFlag.DefValue).To(Equal("-1"))

		topFlag := cmd.Flags().Lookup("top")
		Expect(topFlag).NotTo(BeNil())
		Expect(topFlag.Shorthand).To(Equal("t"))
		Expect(topFlag.DefValue).To(Equal("5"))

		quietFlag := cmd.Flags().Lookup("quiet")
		Expect(quietFlag).NotTo(BeNil())
		Expect(quietFlag.Shorthand).To(Equal("q"))

		providerFlag := cmd.Flags().Lookup("embedding-provider")
		Expect(providerFlag).NotTo(BeNil())
		Expect(providerFlag.DefValue).To(Equal("ollama"))
	})

	It("requires exactly one goal argument", func() {
		cmd := NewScoreCmd()

		Expect(cmd.Args(cmd, []string{})).To(HaveOccurred())
		Expect(cmd.Args(cmd, []string{"(v A x)"})).To(Succeed())
		Expect(cmd.Args(cmd, []string{"(v A x)", "extra"})).To(HaveOccurred())
	})
})
