package split

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ScratchDir", func() {
	var (
		tmpDir  string
		scratch Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		scratch, err = NewScratchDir(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		var (
			savedPath string
			err       error
		)

		JustBeforeEach(func() {
			savedPath, err = scratch.Save("receipt.png", []byte("bitmap bytes"))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the filename", func() {
			Expect(savedPath).To(Equal("receipt.png"))
		})

		It("should write the file to disk", func() {
			Expect(filepath.Join(tmpDir, "receipt.png")).To(BeAnExistingFile())
		})

		When("the file already exists", func() {
			BeforeEach(func() {
				_, saveErr := scratch.Save("receipt.png", []byte("previous bitmap"))
				Expect(saveErr).NotTo(HaveOccurred())
			})

			It("should overwrite it", func() {
				data, getErr := scratch.Get("receipt.png")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("bitmap bytes"))
			})
		})
	})

	Describe("Get", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := scratch.Save("receipt.png", []byte("bitmap bytes"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the file data", func() {
				data, err := scratch.Get("receipt.png")
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("bitmap bytes"))
			})
		})

		When("the file does not exist", func() {
			It("returns an error", func() {
				_, err := scratch.Get("missing.png")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Delete", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := scratch.Save("receipt.png", []byte("bitmap bytes"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the file", func() {
				Expect(scratch.Delete("receipt.png")).To(Succeed())
				Expect(filepath.Join(tmpDir, "receipt.png")).NotTo(BeAnExistingFile())
			})
		})

		When("the file does not exist", func() {
			It("returns an error", func() {
				Expect(scratch.Delete("missing.png")).NotTo(Succeed())
			})
		})
	})
})
