package split

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parser", func() {
	var (
		parser Parser
		text   string
		items  []LineItem
	)

	BeforeEach(func() {
		parser = Parser{}
	})

	JustBeforeEach(func() {
		items = parser.ParseItems(text)
	})

	When("parsing a regular item line", func() {
		BeforeEach(func() {
			text = "BANANAS   041234567890   1.99"
		})

		It("should yield exactly one item", func() {
			Expect(items).To(HaveLen(1))
		})

		It("should trim the item name", func() {
			Expect(items[0].Name).To(Equal("BANANAS"))
		})

		It("should read the trailing price as cents", func() {
			Expect(items[0].Price).To(Equal(199))
		})
	})

	When("parsing a weighted item", func() {
		BeforeEach(func() {
			text = "GRAPES SEEDLESS 041234567891\n2.15 lb @ 2.99/lb   6.43"
		})

		It("should yield exactly one item", func() {
			Expect(items).To(HaveLen(1))
		})

		It("should keep the multi-word name", func() {
			Expect(items[0].Name).To(Equal("GRAPES SEEDLESS"))
		})

		It("should read the price from the weight line", func() {
			Expect(items[0].Price).To(Equal(643))
		})
	})

	When("a weighted item is followed by more items", func() {
		BeforeEach(func() {
			text = "GRAPES SEEDLESS 041234567891\n2.15 lb @ 2.99/lb   6.43\nMILK 041234567892 3.49"
		})

		It("should not re-scan the weight line as an item", func() {
			Expect(items).To(HaveLen(2))
			Expect(items[0].Name).To(Equal("GRAPES SEEDLESS"))
			Expect(items[1].Name).To(Equal("MILK"))
		})
	})

	When("the SUBTOTAL sentinel appears", func() {
		BeforeEach(func() {
			text = "BANANAS 041234567890 1.99\nSUBTOTAL 041234567899 12.34\nMILK 041234567892 3.49"
		})

		It("should halt the scan and drop everything after it", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("BANANAS"))
		})
	})

	When("the sentinel is in mixed case", func() {
		BeforeEach(func() {
			text = "BANANAS 041234567890 1.99\nSubTotal 041234567899 12.34\nMILK 041234567892 3.49"
		})

		It("should still halt the scan", func() {
			Expect(items).To(HaveLen(1))
		})
	})

	When("a line has a trailing price but no adjacent UPC", func() {
		BeforeEach(func() {
			text = "TAX 1.23\nTOTAL 14.56"
		})

		It("should produce no items", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("an item line has no readable price", func() {
		BeforeEach(func() {
			text = "BANANAS 041234567890"
		})

		It("should drop the zero-price item by default", func() {
			Expect(items).To(BeEmpty())
		})

		When("zero-price items are kept", func() {
			BeforeEach(func() {
				parser = Parser{KeepZeroPrice: true}
			})

			It("should keep the item with a zero price", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Price).To(Equal(0))
			})
		})
	})

	When("lines use CRLF endings", func() {
		BeforeEach(func() {
			text = "BANANAS 041234567890 1.99\r\nMILK 041234567892 3.49"
		})

		It("should split lines on either convention", func() {
			Expect(items).To(HaveLen(2))
		})
	})

	When("the text is OCR noise", func() {
		BeforeEach(func() {
			text = "WAL*MART\n#### 1234 ####\nST# 02711 OP# 009036\n||||||||||||"
		})

		It("should skip everything without error", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("parsing several items", func() {
		BeforeEach(func() {
			text = "BANANAS 041234567890 1.99\nMILK 041234567892 3.49\nBREAD 041234567893 2.50"
		})

		It("should preserve receipt order", func() {
			Expect(items).To(HaveLen(3))
			Expect(items[0].Name).To(Equal("BANANAS"))
			Expect(items[1].Name).To(Equal("MILK"))
			Expect(items[2].Name).To(Equal("BREAD"))
		})
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			text = ""
		})

		It("should return an empty sequence", func() {
			Expect(items).To(BeEmpty())
		})
	})
})
