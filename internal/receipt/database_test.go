package receipt

import (
	"errors"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.etcd.io/bbolt"

	"github.com/zombor/pantry-scan/internal/parsing"
)

var _ = Describe("BoltDB", func() {
	var (
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	newReceipt := func(id string) *Receipt {
		now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
		return &Receipt{
			ID:          id,
			Filename:    id + "_receipt.jpg",
			ContentType: "image/jpeg",
			Parsed:      parsing.NewDefaultParser().Parse("MILK 3.49\nTAX 0.21\nTOTAL 3.70"),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	Describe("SaveReceipt and GetReceipt", func() {
		It("should round-trip the parsed receipt", func() {
			Expect(db.SaveReceipt(newReceipt("r1"))).To(Succeed())

			saved, err := db.GetReceipt("r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Filename).To(Equal("r1_receipt.jpg"))
			Expect(saved.Parsed.Items).To(HaveLen(1))
			Expect(saved.Parsed.Items[0].LineTotal.String()).To(Equal("3.49"))
			Expect(saved.Parsed.Tax.String()).To(Equal("0.21"))
			Expect(saved.Parsed.Total.String()).To(Equal("3.70"))
			Expect(saved.Parsed.PurchaseDate).To(BeNil())
			Expect(saved.CreatedAt.Equal(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))).To(BeTrue())
		})

		It("should replace an existing receipt", func() {
			r := newReceipt("r1")
			Expect(db.SaveReceipt(r)).To(Succeed())
			r.ContentType = "image/png"
			Expect(db.SaveReceipt(r)).To(Succeed())

			saved, err := db.GetReceipt("r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.ContentType).To(Equal("image/png"))
		})

		It("should refuse to overwrite a corrupt record", func() {
			r := newReceipt("r1")
			Expect(db.SaveReceipt(r)).To(Succeed())
			Expect(db.db.Update(func(tx *bbolt.Tx) error {
				return tx.Bucket([]byte(bucketName)).Put([]byte("r1"), []byte("{not json"))
			})).To(Succeed())

			err := db.SaveReceipt(r)
			Expect(err).To(MatchError(ContainSubstring("replacing receipt")))

			Expect(db.db.View(func(tx *bbolt.Tx) error {
				Expect(tx.Bucket([]byte(createdIndexBucket)).Stats().KeyN).To(Equal(1))
				return nil
			})).To(Succeed())
		})

		It("should reject a receipt without an ID", func() {
			Expect(db.SaveReceipt(&Receipt{})).NotTo(Succeed())
		})

		It("should report missing receipts as ErrNotFound", func() {
			_, err := db.GetReceipt("missing")
			Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
		})
	})

	Describe("ListReceipts", func() {
		It("should return an empty list for a new database", func() {
			receipts, err := db.ListReceipts()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).NotTo(BeNil())
			Expect(receipts).To(BeEmpty())
		})

		It("should return every receipt, newest first", func() {
			older := newReceipt("b-older")
			newer := newReceipt("a-newer")
			newer.CreatedAt = older.CreatedAt.Add(time.Hour)
			Expect(db.SaveReceipt(older)).To(Succeed())
			Expect(db.SaveReceipt(newer)).To(Succeed())

			receipts, err := db.ListReceipts()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(HaveLen(2))
			Expect(receipts[0].ID).To(Equal("a-newer"))
			Expect(receipts[1].ID).To(Equal("b-older"))
		})

		It("should not duplicate a receipt saved twice", func() {
			r := newReceipt("r1")
			Expect(db.SaveReceipt(r)).To(Succeed())
			r.CreatedAt = r.CreatedAt.Add(time.Minute)
			Expect(db.SaveReceipt(r)).To(Succeed())

			receipts, err := db.ListReceipts()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(HaveLen(1))
		})
	})

	Describe("DeleteReceipt", func() {
		It("should remove the receipt", func() {
			Expect(db.SaveReceipt(newReceipt("r1"))).To(Succeed())
			Expect(db.DeleteReceipt("r1")).To(Succeed())

			_, err := db.GetReceipt("r1")
			Expect(errors.Is(err, ErrNotFound)).To(BeTrue())

			receipts, err := db.ListReceipts()
			Expect(err).NotTo(HaveOccurred())
			Expect(receipts).To(BeEmpty())
		})

		It("should ignore missing receipts", func() {
			Expect(db.DeleteReceipt("missing")).To(Succeed())
		})
	})

	It("should persist across reopen", func() {
		Expect(db.SaveReceipt(newReceipt("r1"))).To(Succeed())
		Expect(db.Close()).To(Succeed())

		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())

		_, err = db.GetReceipt("r1")
		Expect(err).NotTo(HaveOccurred())
	})
})
