package split

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltDB", func() {
	var db *BoltDB

	BeforeEach(func() {
		var err error
		db, err = NewBoltDB(filepath.Join(GinkgoT().TempDir(), "roster.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	Describe("AddPerson", func() {
		BeforeEach(func() {
			Expect(db.AddPerson("Alice")).To(Succeed())
			Expect(db.AddPerson("Bob")).To(Succeed())
		})

		It("should list people in the order they were added", func() {
			people, err := db.ListPeople()
			Expect(err).NotTo(HaveOccurred())
			Expect(people).To(Equal([]string{"Alice", "Bob"}))
		})

		When("re-adding an existing name", func() {
			BeforeEach(func() {
				Expect(db.AddPerson("Alice")).To(Succeed())
			})

			It("should be a no-op that keeps the original order", func() {
				people, err := db.ListPeople()
				Expect(err).NotTo(HaveOccurred())
				Expect(people).To(Equal([]string{"Alice", "Bob"}))
			})
		})
	})

	Describe("RemovePerson", func() {
		BeforeEach(func() {
			Expect(db.AddPerson("Alice")).To(Succeed())
			Expect(db.AddPerson("Bob")).To(Succeed())
			Expect(db.RemovePerson("Alice")).To(Succeed())
		})

		It("should remove the person from the roster", func() {
			people, err := db.ListPeople()
			Expect(err).NotTo(HaveOccurred())
			Expect(people).To(Equal([]string{"Bob"}))
		})

		It("should tolerate removing an unknown name", func() {
			Expect(db.RemovePerson("Mallory")).To(Succeed())
		})
	})

	Describe("ListPeople", func() {
		When("the roster is empty", func() {
			It("should return an empty list", func() {
				people, err := db.ListPeople()
				Expect(err).NotTo(HaveOccurred())
				Expect(people).To(BeEmpty())
			})
		})
	})
})
