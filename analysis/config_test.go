package analysis_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/analysis"
)

var _ = Describe("Config", func() {
	It("matches §4.3's stated hazard table by default", func() {
		cfg := analysis.DefaultConfig()
		Expect(cfg.PipelineDepths).To(Equal([3]int{5, 7, 13}))
		Expect(cfg.HazardNoForward).To(Equal([3]int{2, 1, 1}))
		Expect(cfg.HazardForward).To(Equal([3]int{1, 2, 3}))
	})

	It("validates positive thresholds and rejects non-positive ones", func() {
		cfg := analysis.DefaultConfig()
		Expect(cfg.Validate()).To(Succeed())

		cfg.WindowCapacity = 0
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("round-trips through a JSON file", func() {
		dir := os.TempDir()
		path := filepath.Join(dir, "mipssim-analysis-config-test.json")
		defer os.Remove(path)

		cfg := analysis.DefaultConfig()
		cfg.WindowCapacity = 4
		Expect(analysis.SaveConfig(cfg, path)).To(Succeed())

		loaded, err := analysis.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.WindowCapacity).To(Equal(4))
	})

	It("clones independently of the source", func() {
		cfg := analysis.DefaultConfig()
		clone := cfg.Clone()
		clone.WindowCapacity = 99
		Expect(cfg.WindowCapacity).NotTo(Equal(99))
	})
})
