package split

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Settle", func() {
	var (
		ledger    *Ledger
		purchaser string
		shares    []Share
		err       error
	)

	BeforeEach(func() {
		ledger = NewLedger()
		ledger.SeedItems([]LineItem{
			{ID: "item-1", Name: "PIZZA", Price: 999},
			{ID: "item-2", Name: "MILK", Price: 349},
		})
		ledger.AddPerson("Alice")
		ledger.AddPerson("Bob")
		ledger.AddPerson("Carol")
		purchaser = "Alice"
	})

	JustBeforeEach(func() {
		shares, err = ledger.Settle(purchaser)
	})

	When("an item is split across three people", func() {
		BeforeEach(func() {
			for _, person := range []string{"Alice", "Bob", "Carol"} {
				Expect(ledger.SetAssignment("item-1", person, true)).To(Succeed())
			}
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should credit each non-purchaser an even share rounded to cents", func() {
			Expect(shares).To(HaveLen(2))
			Expect(shares[0].AmountOwed).To(Equal(333))
			Expect(shares[1].AmountOwed).To(Equal(333))
		})

		It("should exclude the purchaser from the report", func() {
			for _, share := range shares {
				Expect(share.Person).NotTo(Equal("Alice"))
			}
		})

		It("should list the item for every assignee", func() {
			Expect(shares[0].Items).To(Equal([]string{"PIZZA"}))
			Expect(shares[1].Items).To(Equal([]string{"PIZZA"}))
		})
	})

	When("a person shares several items", func() {
		BeforeEach(func() {
			Expect(ledger.SetAssignment("item-1", "Bob", true)).To(Succeed())
			Expect(ledger.SetAssignment("item-2", "Bob", true)).To(Succeed())
		})

		It("should accumulate the shares", func() {
			Expect(shares).To(HaveLen(1))
			Expect(shares[0].Person).To(Equal("Bob"))
			Expect(shares[0].AmountOwed).To(Equal(999 + 349))
		})

		It("should list the items in receipt order", func() {
			Expect(shares[0].Items).To(Equal([]string{"PIZZA", "MILK"}))
		})
	})

	When("an item has no assignees", func() {
		BeforeEach(func() {
			Expect(ledger.SetAssignment("item-2", "Bob", true)).To(Succeed())
		})

		It("contributes nothing to the totals", func() {
			Expect(shares).To(HaveLen(1))
			Expect(shares[0].AmountOwed).To(Equal(349))
		})
	})

	When("a person has no assigned items", func() {
		BeforeEach(func() {
			Expect(ledger.SetAssignment("item-1", "Bob", true)).To(Succeed())
		})

		It("does not appear in the report", func() {
			Expect(shares).To(HaveLen(1))
			Expect(shares[0].Person).To(Equal("Bob"))
		})
	})

	When("no purchaser is selected", func() {
		BeforeEach(func() {
			purchaser = ""
			Expect(ledger.SetAssignment("item-1", "Bob", true)).To(Succeed())
		})

		It("fails with the purchaser validation error", func() {
			Expect(err).To(MatchError(ErrNoPurchaserSelected))
		})

		It("produces no partial result", func() {
			Expect(shares).To(BeNil())
		})
	})

	When("the purchaser is not a registered person", func() {
		BeforeEach(func() {
			purchaser = "Mallory"
		})

		It("fails with the purchaser validation error", func() {
			Expect(err).To(MatchError(ErrNoPurchaserSelected))
		})
	})

	When("the rounded shares are summed", func() {
		BeforeEach(func() {
			for _, person := range []string{"Alice", "Bob", "Carol"} {
				Expect(ledger.SetAssignment("item-1", person, true)).To(Succeed())
			}
		})

		It("reconstructs the item price up to rounding", func() {
			total := 333 // Alice's share, not reported
			for _, share := range shares {
				total += share.AmountOwed
			}
			Expect(total).To(Equal(999))
		})
	})
})
