package theorem_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/premiselab/premise/pkg/theorem"
)

var _ = Describe("LoadDatabaseFromFile", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	It("loads theorems in file order", func() {
		data := `{
			"name": "mini",
			"theorems": [
				{"name": "ADD_SYM", "conclusion": "(= (+ a b) (+ b a))", "tag": "THEOREM"},
				{"name": "MUL_SYM", "conclusion": "(= (* a b) (* b a))", "tag": "THEOREM"},
				{"conclusion": "(v A x)", "tag": "GOAL", "hypotheses": ["(v A y)"]}
			]
		}`
		path := filepath.Join(tmpDir, "db.json")
		Expect(os.WriteFile(path, []byte(data), 0o644)).To(Succeed())

		db, err := theorem.LoadDatabaseFromFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Name).To(Equal("mini"))
		Expect(db.Theorems).To(HaveLen(3))
		Expect(db.Theorems[0].Name).To(Equal("ADD_SYM"))
		Expect(db.Theorems[1].Conclusion).To(Equal("(= (* a b) (* b a))"))
		Expect(db.Theorems[2].Hypotheses).To(Equal([]string{"(v A y)"}))
	})

	It("fails for a missing file", func() {
		_, err := theorem.LoadDatabaseFromFile(filepath.Join(tmpDir, "missing.json"))
		Expect(err).To(HaveOccurred())
	})

	It("fails for malformed JSON", func() {
		path := filepath.Join(tmpDir, "bad.json")
		Expect(os.WriteFile(path, []byte("{theorems: ["), 0o644)).To(Succeed())

		_, err := theorem.LoadDatabaseFromFile(path)
		Expect(err).To(HaveOccurred())
	})
})
