package embedcmder

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/premiselab/premise/pkg/theorem"
	testutils "github.com/premiselab/premise/pkg/utils/test"
)

var _ = Describe("NewEmbedCmd", func() {
	It("creates a command with correct use name", func() {
		cmd := NewEmbedCmd()
		Expect(cmd.Use).To(Equal("embed <database>"))
	})

	It("has the expected flags", func() {
		cmd := NewEmbedCmd()

		outFlag := cmd.Flags().Lookup("out")
		Expect(outFlag).NotTo(BeNil())
		Expect(outFlag.Shorthand).To(Equal("o"))
		Expect(outFlag.DefValue).To(Equal("embeddings.emb"))

		providerFlag := cmd.Flags().Lookup("embedding-provider")
		Expect(providerFlag).NotTo(BeNil())
		Expect(providerFlag.DefValue).To(Equal("ollama"))

		targetFlag := cmd.Flags().Lookup("embedding-target")
		Expect(targetFlag).NotTo(BeNil())

		modelFlag := cmd.Flags().Lookup("embedding-model")
		Expect(modelFlag).NotTo(BeNil())

		mirrorFlag := cmd.Flags().Lookup("mirror")
		Expect(mirrorFlag).NotTo(BeNil())
		Expect(mirrorFlag.DefValue).To(Equal("false"))

		vectorDBFlag := cmd.Flags().Lookup("vector-db")
		Expect(vectorDBFlag).NotTo(BeNil())
		Expect(vectorDBFlag.DefValue).To(Equal("premise.db"))
	})

	It("requires exactly one database argument", func() {
		cmd := NewEmbedCmd()

		Expect(cmd.Args(cmd, []string{})).To(HaveOccurred())
		Expect(cmd.Args(cmd, []string{"theorems.json"})).To(Succeed())
		Expect(cmd.Args(cmd, []string{"theorems.json", "extra"})).To(HaveOccurred())
	})
})

var _ = Describe("mirrorEmbeddings", func() {
	It("writes one document per theorem with normalized conclusions", func() {
		cmder := &embedCommander{vectorDB: ":memory:", logger: zap.NewNop()}
		driver := testutils.NewMockVectorDriver()

		db := &theorem.Database{
			Theorems: []theorem.Theorem{
				{Name: "MOD_ADD", Conclusion: "(a +  b)"},
				{Conclusion: "(v A x)"},
			},
		}
		matrix := [][]float32{{1, 0}, {0, 1}}

		err := cmder.mirrorEmbeddings(context.Background(), driver, db, matrix)
		Expect(err).NotTo(HaveOccurred())

		docs := driver.Documents()
		Expect(docs).To(HaveLen(2))
		Expect(docs[0].ID).To(Equal("MOD_ADD"))
		Expect(docs[0].Conclusion).To(Equal("(a + b)"))
		Expect(docs[0].Embedding).To(Equal([]float32{1, 0}))
		Expect(docs[1].ID).To(Equal("thm-1"))
	})
})
