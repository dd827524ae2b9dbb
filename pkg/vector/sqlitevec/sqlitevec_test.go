package sqlitevec_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/premiselab/premise/pkg/vector"
	"github.com/premiselab/premise/pkg/vector/sqlitevec"
)

var _ = Describe("Driver", func() {
	var logger *zap.Logger

	BeforeEach(func() {
		logger = zap.NewNop()
	})

	Describe("NewDriver", func() {
		It("should return an error when DBPath is empty", func() {
			_, err := sqlitevec.NewDriver(sqlitevec.Config{DBPath: ""}, logger)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("database path is required"))
		})

		It("should create a driver with an in-memory database", func() {
			driver, err := sqlitevec.NewDriver(sqlitevec.Config{
				DBPath:     ":memory:",
				Dimensions: 4,
			}, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(driver).NotTo(BeNil())
			Expect(driver.Close()).To(Succeed())
		})

		It("should error when dimension not specified", func() {
			_, err := sqlitevec.NewDriver(sqlitevec.Config{
				DBPath: ":memory:",
			}, logger)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("corpus operations", func() {
		var driver *sqlitevec.Driver

		BeforeEach(func() {
			var err error
			driver, err = sqlitevec.NewDriver(sqlitevec.Config{
				DBPath:     ":memory:",
				Dimensions: 4,
			}, logger)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			Expect(driver.Close()).To(Succeed())
		})

		It("should do nothing when given empty docs", func() {
			Expect(driver.Add(context.Background(), []vector.Document{})).To(Succeed())
		})

		It("should store and retrieve a theorem", func() {
			docs := []vector.Document{
				{
					ID:         "ADD_SYM",
					Conclusion: "(= (+ a b) (+ b a))",
					Embedding:  []float32{0.1, 0.2, 0.3, 0.4},
				},
			}

			Expect(driver.Add(context.Background(), docs)).To(Succeed())

			retrieved, err := driver.Get(context.Background(), []string{"ADD_SYM"})
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved).To(HaveLen(1))
			Expect(retrieved[0].ID).To(Equal("ADD_SYM"))
			Expect(retrieved[0].Conclusion).To(Equal("(= (+ a b) (+ b a))"))
			Expect(retrieved[0].Embedding).To(Equal([]float32{0.1, 0.2, 0.3, 0.4}))
		})

		It("should update an existing theorem in place", func() {
			Expect(driver.Add(context.Background(), []vector.Document{
				{ID: "ADD_SYM", Conclusion: "old", Embedding: []float32{0.1, 0.1, 0.1, 0.1}},
			})).To(Succeed())

			Expect(driver.Add(context.Background(), []vector.Document{
				{ID: "ADD_SYM", Conclusion: "new", Embedding: []float32{0.9, 0.9, 0.9, 0.9}},
			})).To(Succeed())

			retrieved, err := driver.Get(context.Background(), []string{"ADD_SYM"})
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved).To(HaveLen(1))
			Expect(retrieved[0].Conclusion).To(Equal("new"))
			Expect(retrieved[0].Embedding).To(Equal([]float32{0.9, 0.9, 0.9, 0.9}))
		})

		It("should return nearest theorems first from a query", func() {
			Expect(driver.Add(context.Background(), []vector.Document{
				{ID: "near", Conclusion: "a", Embedding: []float32{1, 0, 0, 0}},
				{ID: "far", Conclusion: "b", Embedding: []float32{0, 0, 0, 1}},
			})).To(Succeed())

			results, err := driver.Query(context.Background(), []float32{0.9, 0.1, 0, 0}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].ID).To(Equal("near"))
			Expect(results[0].Score).To(BeNumerically(">", results[1].Score))
		})

		It("should delete theorems by ID", func() {
			Expect(driver.Add(context.Background(), []vector.Document{
				{ID: "ADD_SYM", Conclusion: "a", Embedding: []float32{1, 0, 0, 0}},
				{ID: "MUL_SYM", Conclusion: "b", Embedding: []float32{0, 1, 0, 0}},
			})).To(Succeed())

			Expect(driver.Delete(context.Background(), []string{"ADD_SYM"})).To(Succeed())

			retrieved, err := driver.Get(context.Background(), []string{"ADD_SYM", "MUL_SYM"})
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved).To(HaveLen(1))
			Expect(retrieved[0].ID).To(Equal("MUL_SYM"))
		})
	})

	Describe("Interface compliance", func() {
		It("should implement vector.Driver", func() {
			var _ vector.Driver = (*sqlitevec.Driver)(nil)
		})
	})
})
