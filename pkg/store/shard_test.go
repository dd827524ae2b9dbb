package store_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/premiselab/premise/pkg/store"
)

var _ = Describe("ParseShardPath", func() {
	DescribeTable("recognized annotations",
		func(path string, wantIndex, wantTotal int) {
			sh, ok := store.ParseShardPath(path)
			Expect(ok).To(BeTrue())
			Expect(sh.Index).To(Equal(wantIndex))
			Expect(sh.Total).To(Equal(wantTotal))
		},
		Entry("zero-padded suffix", "embs.emb-000-of-002", 0, 2),
		Entry("unpadded suffix", "embs.emb-12-of-34", 12, 34),
		Entry("with directory", "/data/embs/embs.emb-001-of-002", 1, 2),
	)

	DescribeTable("paths without annotation",
		func(path string) {
			_, ok := store.ParseShardPath(path)
			Expect(ok).To(BeFalse())
		},
		Entry("plain file", "embs.emb"),
		Entry("bare numeric suffix", "embs.emb_1"),
		Entry("annotation not at the end", "embs-000-of-002.emb"),
		Entry("missing index", "embs.emb-of-002"),
	)
})
