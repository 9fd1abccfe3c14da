package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/grandupright/quote-intake/internal/config"
	st "github.com/grandupright/quote-intake/internal/store"
	"github.com/grandupright/quote-intake/internal/store/model"
)

const (
	insertSubmissionStm = "INSERT INTO submissions (id, job_reference, full_name, email, phone, piano_type, submitted_at) VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s');"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Suite")
}

var _ = Describe("submission store", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := st.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = st.NewStore(db)
		gormdb = db

		Expect(s.InitialMigration()).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM submissions;")
	})

	Context("create", func() {
		It("successfully creates a submission", func() {
			submission := model.Submission{
				ID:           uuid.New(),
				JobReference: "PM-123456",
				FullName:     "Clara Wieck",
				Email:        "clara@example.com",
				Phone:        "07700 900123",
				PianoType:    "grand",
				SubmittedAt:  time.Now(),
			}

			created, err := s.Submission().Create(context.TODO(), submission)
			Expect(err).To(BeNil())
			Expect(created).NotTo(BeNil())
			Expect(created.ID).To(Equal(submission.ID))

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM submissions;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("allows a repeated job reference", func() {
			first := model.Submission{
				ID:           uuid.New(),
				JobReference: "PM-123456",
				FullName:     "Clara Wieck",
				Email:        "clara@example.com",
				Phone:        "07700 900123",
				SubmittedAt:  time.Now(),
			}
			second := first
			second.ID = uuid.New()
			second.FullName = "Robert Wieck"

			_, err := s.Submission().Create(context.TODO(), first)
			Expect(err).To(BeNil())
			_, err = s.Submission().Create(context.TODO(), second)
			Expect(err).To(BeNil())

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM submissions;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(2))
		})

		It("rejects a duplicate id", func() {
			submission := model.Submission{
				ID:           uuid.New(),
				JobReference: "PM-123456",
				FullName:     "Clara Wieck",
				Email:        "clara@example.com",
				Phone:        "07700 900123",
				SubmittedAt:  time.Now(),
			}

			_, err := s.Submission().Create(context.TODO(), submission)
			Expect(err).To(BeNil())

			_, err = s.Submission().Create(context.TODO(), submission)
			Expect(err).To(MatchError(st.ErrDuplicateKey))
		})
	})

	Context("list", func() {
		It("successfully lists all the submissions", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertSubmissionStm, uuid.New(), "PM-000001", "submitter1", "one@example.com", "0111", "upright", "2026-02-01 10:00:00"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertSubmissionStm, uuid.New(), "PM-000002", "submitter2", "two@example.com", "0222", "grand", "2026-02-02 10:00:00"))
			Expect(tx.Error).To(BeNil())

			submissions, err := s.Submission().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(submissions).To(HaveLen(2))
			Expect(submissions[0].JobReference).To(Equal("PM-000001"))
		})
	})

	Context("get by job reference", func() {
		It("successfully returns the submission", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertSubmissionStm, uuid.New(), "PM-000003", "submitter3", "three@example.com", "0333", "upright", "2026-02-03 10:00:00"))
			Expect(tx.Error).To(BeNil())

			submission, err := s.Submission().GetByJobReference(context.TODO(), "PM-000003")
			Expect(err).To(BeNil())
			Expect(submission.FullName).To(Equal("submitter3"))
		})

		It("returns the newest row when the reference repeats", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertSubmissionStm, uuid.New(), "PM-000003", "earlier", "three@example.com", "0333", "upright", "2026-02-03 10:00:00"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertSubmissionStm, uuid.New(), "PM-000003", "later", "three@example.com", "0333", "upright", "2026-02-04 10:00:00"))
			Expect(tx.Error).To(BeNil())

			submission, err := s.Submission().GetByJobReference(context.TODO(), "PM-000003")
			Expect(err).To(BeNil())
			Expect(submission.FullName).To(Equal("later"))
		})

		It("returns ErrRecordNotFound for an unknown reference", func() {
			_, err := s.Submission().GetByJobReference(context.TODO(), "PM-999999")
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("transaction", func() {
		It("inserts a submission successfully", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			m := model.Submission{
				ID:           uuid.New(),
				JobReference: "PM-777777",
				FullName:     "Robert Wieck",
				Email:        "robert@example.com",
				Phone:        "07700 900456",
				SubmittedAt:  time.Now(),
			}
			submission, err := s.Submission().Create(ctx, m)
			Expect(submission).ToNot(BeNil())
			Expect(err).To(BeNil())

			// commit
			_, cerr := st.Commit(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM submissions;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rolls back a submission successfully", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			m := model.Submission{
				ID:           uuid.New(),
				JobReference: "PM-888888",
				FullName:     "Robert Wieck",
				Email:        "robert@example.com",
				Phone:        "07700 900456",
				SubmittedAt:  time.Now(),
			}
			submission, err := s.Submission().Create(ctx, m)
			Expect(submission).ToNot(BeNil())
			Expect(err).To(BeNil())

			// visible inside the same transaction
			submissions, err := s.Submission().List(ctx)
			Expect(err).To(BeNil())
			Expect(submissions).To(HaveLen(1))

			// rollback
			_, cerr := st.Rollback(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) FROM submissions;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})
	})

	Context("statistics", func() {
		It("aggregates submissions by piano type", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertSubmissionStm, uuid.New(), "PM-000004", "submitter4", "four@example.com", "0444", "grand", "2026-02-04 10:00:00"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertSubmissionStm, uuid.New(), "PM-000005", "submitter5", "five@example.com", "0555", "grand", "2026-02-05 10:00:00"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertSubmissionStm, uuid.New(), "PM-000006", "submitter6", "six@example.com", "0666", "", "2026-02-06 10:00:00"))
			Expect(tx.Error).To(BeNil())

			stats, err := s.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Total).To(Equal(int64(3)))
			Expect(stats.ByPianoType).To(HaveKeyWithValue("grand", int64(2)))
			Expect(stats.ByPianoType).To(HaveKeyWithValue("unspecified", int64(1)))
		})
	})
})
