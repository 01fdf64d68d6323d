package config

import (
	"log"
	"sync"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init跟read分開
init : 設置viper watch 與 onConfigChange
read : 一般讀取, 需要使用讀寫鎖
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServerPort      string  `mapstructure:"SERVER_PORT"`
	MongoURI        string  `mapstructure:"MONGO_URI"`
	MongoDBName     string  `mapstructure:"MONGO_DB_NAME"`
	TokenInfoURL    string  `mapstructure:"TOKEN_INFO_URL"`
	TokenAudience   string  `mapstructure:"TOKEN_AUDIENCE"`
	RedisAddr       string  `mapstructure:"REDIS_ADDR"`
	RedisPassword   string  `mapstructure:"REDIS_PASSWORD"`
	KafkaBrokers    string  `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string  `mapstructure:"KAFKA_ORDER_TOPIC"`
	FixturePath     string  `mapstructure:"FIXTURE_PATH"`
	DeliveryCharge  float64 `mapstructure:"DELIVERY_CHARGE"`
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

func initConfig() {
	if config_singleton == nil {
		muonce.Do(func() {
			config_singleton = &ConfigSingleTon{}
			cf, err := loadConfig()
			if err != nil {
				log.Fatal("error reading config")
			}
			config_singleton.Config = cf
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if cf, err := loadConfig(); err == nil {
					config_singleton.mu.Lock()
					config_singleton.Config = cf
					config_singleton.mu.Unlock()
				} else {
					log.Printf("failed to reload config file: %v", err)
				}
			})
		})
	}
}

/*
單純回傳錯誤, 由外部決定要不要Fatal
.env 可以不存在, 全部從環境變數讀也行
*/
func loadConfig() (cf *Config, err error) {
	cf = &Config{}

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	setDefaults()

	// .env 不存在就只吃環境變數
	_ = viper.ReadInConfig()

	err = viper.Unmarshal(cf)
	if err != nil {
		return nil, err
	}
	return cf, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB_NAME", "storefront")
	viper.SetDefault("TOKEN_INFO_URL", "https://oauth2.googleapis.com/tokeninfo")
	viper.SetDefault("KAFKA_ORDER_TOPIC", "storefront.orders")
	viper.SetDefault("FIXTURE_PATH", "products.json")
	viper.SetDefault("DELIVERY_CHARGE", 60)
}
