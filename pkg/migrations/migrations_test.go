package migrations_test

import (
	"os"
	"path"
	"testing"

	"github.com/grandupright/quote-intake/internal/config"
	"github.com/grandupright/quote-intake/internal/store"
	"github.com/grandupright/quote-intake/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestMigrations(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Migrations Suite")
}

var _ = Describe("migrations", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	Context("store migrations", Ordered, func() {
		It("fails to migrate the db -- migration folder does not exist", func() {
			cfg := config.NewDefault()
			cfg.Service.MigrationFolder = "some folder"
			err := migrations.MigrateStore(gormdb, cfg)
			Expect(err).NotTo(BeNil())
		})

		It("fails to migrate the db -- migration folder is a file", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())

			cfg := config.NewDefault()
			cfg.Service.MigrationFolder = path.Join(currentFolder, "migrations.go")
			err = migrations.MigrateStore(gormdb, cfg)
			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("is not a folder"))
		})
	})
})
