package appcontext

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/fixture"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth/idtoken"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

type ApplicationContext struct {
	Cf           *config.Config
	Logger       *zerolog.Logger
	DbClient     *mongo.Client
	Database     *mongo.Database
	Fallback     *fixture.Fallback
	AuthVerifier idtoken.IAuthVerifier

	ProductRepo  db.IProductRepository
	CartRepo     db.ICartRepository
	OrderRepo    db.IOrderRepository
	ReviewRepo   db.IReviewRepository
	WishlistRepo db.IWishlistRepository
	UserRepo     db.IUserRepository

	ProductCache  *redis_repo.ProductCache
	OrderProducer producer.IOrderEventProducer

	CatalogService  service.ICatalogService
	CartService     service.ICartService
	OrderService    service.IOrderService
	ReviewService   service.IReviewService
	WishlistService service.IWishlistService
	UserService     service.IUserService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()

	if err := app.setUpDbConn(); err != nil {
		return err
	}
	if err := app.setUpRepositories(); err != nil {
		return err
	}
	app.setUpFixture()
	app.setUpAuthVerifier()
	app.setUpProductCache()
	app.setUpOrderProducer()
	app.setUpServices()

	// 空catalog用fixture seed, db不可用時不擋啟動
	if n, err := app.CatalogService.SeedIfEmpty(context.Background()); err != nil {
		app.Logger.Warn().Err(err).Msg("catalog seed skipped")
	} else if n > 0 {
		app.Logger.Info().Int("count", n).Msg("catalog seeded from fixture")
	}

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront").Logger()
	app.Logger = &logger
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	client, err := db.GetDbConn(app.Cf.MongoURI)
	if err != nil {
		return err
	}
	app.DbClient = client
	app.Database = client.Database(app.Cf.MongoDBName)
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpRepositories() error {
	log.Printf("Start setup repositories")

	productRepo, err := db.NewProductRepo(app.Database)
	if err != nil {
		return err
	}
	cartRepo, err := db.NewCartRepo(app.Database)
	if err != nil {
		return err
	}
	orderRepo, err := db.NewOrderRepo(app.Database)
	if err != nil {
		return err
	}
	reviewRepo, err := db.NewReviewRepo(app.Database)
	if err != nil {
		return err
	}
	wishlistRepo, err := db.NewWishlistRepo(app.Database)
	if err != nil {
		return err
	}
	userRepo, err := db.NewUserRepo(app.Database)
	if err != nil {
		return err
	}

	app.ProductRepo = productRepo
	app.CartRepo = cartRepo
	app.OrderRepo = orderRepo
	app.ReviewRepo = reviewRepo
	app.WishlistRepo = wishlistRepo
	app.UserRepo = userRepo

	log.Printf("Finish setup repositories")
	return nil
}

// fixture載不起來只警告, 少的是fallback不是主功能
func (app *ApplicationContext) setUpFixture() {
	log.Printf("Start setup catalog fixture")
	fallback, err := fixture.Load(app.Cf.FixturePath)
	if err != nil {
		app.Logger.Warn().Err(err).Str("path", app.Cf.FixturePath).Msg("catalog fixture not loaded, fallback disabled")
		return
	}
	app.Fallback = fallback
	log.Printf("Finish setup catalog fixture, %d products", fallback.Len())
}

func (app *ApplicationContext) setUpAuthVerifier() {
	log.Printf("Start setup auth verifier")
	app.AuthVerifier = idtoken.NewVerifier(app.Cf.TokenInfoURL, app.Cf.TokenAudience)
	log.Printf("Finish setup auth verifier")
}

// redis是optional, 沒設定REDIS_ADDR就不掛cache
func (app *ApplicationContext) setUpProductCache() {
	if app.Cf.RedisAddr == "" {
		return
	}
	log.Printf("Start setup product cache")
	client := redis_repo.GetRedisClient(app.Cf.RedisAddr, app.Cf.RedisPassword)
	app.ProductCache = redis_repo.NewProductCache(client, "storefront")
	log.Printf("Finish setup product cache")
}

// kafka是optional, 沒設定KAFKA_BROKERS就不發order event
func (app *ApplicationContext) setUpOrderProducer() {
	if app.Cf.KafkaBrokers == "" {
		return
	}
	log.Printf("Start setup order producer")
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	app.OrderProducer = producer.NewKafkaOrderProducer(brokers, app.Cf.KafkaOrderTopic)
	log.Printf("Finish setup order producer")
}

func (app *ApplicationContext) setUpServices() {
	log.Printf("Start setup services")
	app.CatalogService = service.NewCatalogService(app.ProductRepo, app.Fallback, app.ProductCache)
	app.CartService = service.NewCartService(app.CartRepo, app.ProductRepo)
	app.OrderService = service.NewOrderService(app.OrderRepo, app.ProductRepo, app.CartRepo, app.OrderProducer, app.Cf.DeliveryCharge)
	app.ReviewService = service.NewReviewService(app.ReviewRepo, app.ProductRepo)
	app.WishlistService = service.NewWishlistService(app.WishlistRepo, app.ProductRepo)
	app.UserService = service.NewUserService(app.UserRepo)
	log.Printf("Finish setup services")
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderProducer != nil {
			log.Printf("Closing order producer...")
			if err := app.OrderProducer.Close(); err != nil {
				log.Printf("order producer close error: %v", err)
			}
		}

		if app.DbClient != nil {
			log.Printf("Disconnecting database...")
			if err := app.DbClient.Disconnect(ctx); err != nil {
				done <- err
				return
			}
		}
	}()

	select {
	case err := <-done:
		log.Printf("Finish application shutdown")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
