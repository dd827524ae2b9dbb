package store_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/premiselab/premise/pkg/store"
)

var _ = Describe("Matrix codec", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	It("round-trips a matrix element-wise", func() {
		m := [][]float32{
			{1.5, -2.25, 0},
			{0.003, 1e10, -1e-10},
		}
		path := filepath.Join(tmpDir, "m.emb")

		Expect(store.WriteMatrix(path, m)).To(Succeed())

		got, err := store.ReadMatrix(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(m))
	})

	It("round-trips an empty matrix", func() {
		path := filepath.Join(tmpDir, "empty.emb")

		Expect(store.WriteMatrix(path, [][]float32{})).To(Succeed())

		got, err := store.ReadMatrix(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeEmpty())
	})

	It("overwrites an existing file", func() {
		path := filepath.Join(tmpDir, "m.emb")
		Expect(store.WriteMatrix(path, [][]float32{{1}})).To(Succeed())
		Expect(store.WriteMatrix(path, [][]float32{{2}, {3}})).To(Succeed())

		got, err := store.ReadMatrix(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([][]float32{{2}, {3}}))
	})

	It("rejects ragged rows on write", func() {
		err := store.WriteMatrix(filepath.Join(tmpDir, "ragged.emb"), [][]float32{{1, 2}, {3}})
		Expect(err).To(HaveOccurred())
	})

	It("rejects files that are not embeddings files", func() {
		path := filepath.Join(tmpDir, "junk.emb")
		Expect(os.WriteFile(path, []byte("not a matrix"), 0o644)).To(Succeed())

		_, err := store.ReadMatrix(path)
		Expect(err).To(HaveOccurred())
	})

	It("rejects truncated files", func() {
		path := filepath.Join(tmpDir, "m.emb")
		Expect(store.WriteMatrix(path, [][]float32{{1, 2}, {3, 4}})).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(os.WriteFile(path, data[:len(data)-4], 0o644)).To(Succeed())

		_, err = store.ReadMatrix(path)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Similarity", func() {
	It("computes the inner product", func() {
		score, err := store.Similarity([]float32{1, 2}, []float32{3, 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(score).To(BeNumerically("~", 11, 1e-6))
	})

	It("depends only on the two vectors", func() {
		a, err := store.Similarity([]float32{0.5, -1}, []float32{2, 2})
		Expect(err).NotTo(HaveOccurred())
		b, err := store.Similarity([]float32{0.5, -1}, []float32{2, 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("rejects width mismatches", func() {
		_, err := store.Similarity([]float32{1}, []float32{1, 2})
		Expect(err).To(HaveOccurred())
	})
})
