package premisecmder

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewPremiseCmd", func() {
	It("creates the root command", func() {
		cmd := NewPremiseCmd()
		Expect(cmd.Use).To(Equal("premise"))
	})

	It("registers the persistent flags", func() {
		cmd := NewPremiseCmd()

		debugFlag := cmd.PersistentFlags().Lookup("debug")
		Expect(debugFlag).NotTo(BeNil())
		Expect(debugFlag.Shorthand).To(Equal("d"))

		configDirFlag := cmd.PersistentFlags().Lookup("config-dir")
		Expect(configDirFlag).NotTo(BeNil())
	})

	It("registers the subcommands", func() {
		cmd := NewPremiseCmd()

		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}

		Expect(names).To(ContainElements("embed", "score", "search", "config", "version"))
	})
})
