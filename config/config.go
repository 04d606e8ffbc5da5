// Package config loads the single typed configuration shared by the client,
// the server and the tools. Values come from built-in defaults, an optional
// YAML file and ARENA_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ARENA"

type Config struct {
	Client     ClientConfig     `mapstructure:"client"`
	World      WorldConfig      `mapstructure:"world"`
	Player     PlayerConfig     `mapstructure:"player"`
	Enemy      EnemyConfig      `mapstructure:"enemy"`
	Projectile ProjectileConfig `mapstructure:"projectile"`
	Server     ServerConfig     `mapstructure:"server"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Textures   TextureConfig    `mapstructure:"textures"`
	Log        LogConfig        `mapstructure:"log"`
}

type ClientConfig struct {
	Title          string        `mapstructure:"title"`
	ScreenWidth    int           `mapstructure:"screen_width"`
	ScreenHeight   int           `mapstructure:"screen_height"`
	RenderScale    float64       `mapstructure:"render_scale"`
	Fullscreen     bool          `mapstructure:"fullscreen"`
	VSync          bool          `mapstructure:"vsync"`
	FOV            float64       `mapstructure:"fov"`
	RenderDistance float64       `mapstructure:"render_distance"`
	MaxFrameDelta  time.Duration `mapstructure:"max_frame_delta"`
	MinimapScale   float64       `mapstructure:"minimap_scale"`
	MouseLook      bool          `mapstructure:"mouse_look"`
	MouseSpeed     float64       `mapstructure:"mouse_speed"`
	MaxParticles   int           `mapstructure:"max_particles"`
	ServerURL      string        `mapstructure:"server_url"`
	QuickChat      string        `mapstructure:"quick_chat"`
}

type WorldConfig struct {
	TileSize float64 `mapstructure:"tile_size"`
	MapFile  string  `mapstructure:"map_file"`
	Watch    bool    `mapstructure:"watch"`
}

type PlayerConfig struct {
	StartX        float64       `mapstructure:"start_x"`
	StartY        float64       `mapstructure:"start_y"`
	Speed         float64       `mapstructure:"speed"`
	RotationSpeed float64       `mapstructure:"rotation_speed"`
	Radius        float64       `mapstructure:"radius"`
	MaxHealth     int           `mapstructure:"max_health"`
	MaxAmmo       int           `mapstructure:"max_ammo"`
	ShootCooldown time.Duration `mapstructure:"shoot_cooldown"`
}

// RotationRadians returns the turn rate in radians per second
func (p PlayerConfig) RotationRadians() float64 {
	return p.RotationSpeed * math.Pi / 180
}

type EnemyConfig struct {
	Count             int           `mapstructure:"count"`
	Speed             float64       `mapstructure:"speed"`
	Health            int           `mapstructure:"health"`
	Radius            float64       `mapstructure:"radius"`
	ChaseRange        float64       `mapstructure:"chase_range"`
	AttackRange       float64       `mapstructure:"attack_range"`
	AttackDamage      int           `mapstructure:"attack_damage"`
	AttackCooldown    time.Duration `mapstructure:"attack_cooldown"`
	AnimationInterval time.Duration `mapstructure:"animation_interval"`
	KillScore         int           `mapstructure:"kill_score"`
}

type ProjectileConfig struct {
	Speed     float64       `mapstructure:"speed"`
	Damage    int           `mapstructure:"damage"`
	Radius    float64       `mapstructure:"radius"`
	Lifetime  time.Duration `mapstructure:"lifetime"`
	HitRadius float64       `mapstructure:"hit_radius"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	HealthPort      int           `mapstructure:"health_port"`
	TickRate        int           `mapstructure:"tick_rate"`
	MaxPlayers      int           `mapstructure:"max_players"`
	PlayerTimeout   time.Duration `mapstructure:"player_timeout"`
	MaxMoveDistance float64       `mapstructure:"max_move_distance"`
	KillScore       int           `mapstructure:"kill_score"`
	SpawnMin        float64       `mapstructure:"spawn_min"`
	SpawnSpread     float64       `mapstructure:"spawn_spread"`
	SendBuffer      int           `mapstructure:"send_buffer"`
}

// TickInterval is the wall time between simulation ticks
func (s ServerConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

type AudioConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	MasterVolume float64 `mapstructure:"master_volume"`
	SFXVolume    float64 `mapstructure:"sfx_volume"`
	SampleRate   int     `mapstructure:"sample_rate"`
	MaxDistance  float64 `mapstructure:"max_distance"`
}

type TextureConfig struct {
	Size           int           `mapstructure:"size"`
	Quality        string        `mapstructure:"quality"`
	Seed           int64         `mapstructure:"seed"`
	UseService     bool          `mapstructure:"use_service"`
	ServiceURL     string        `mapstructure:"service_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	HealthTimeout  time.Duration `mapstructure:"health_timeout"`
	ListenAddr     string        `mapstructure:"listen_addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("client.title", "Raycast Arena")
	v.SetDefault("client.screen_width", 1024)
	v.SetDefault("client.screen_height", 768)
	v.SetDefault("client.render_scale", 1.0)
	v.SetDefault("client.fullscreen", false)
	v.SetDefault("client.vsync", true)
	v.SetDefault("client.fov", 60.0)
	v.SetDefault("client.render_distance", 1000.0)
	v.SetDefault("client.max_frame_delta", 100*time.Millisecond)
	v.SetDefault("client.minimap_scale", 0.15)
	v.SetDefault("client.mouse_look", true)
	v.SetDefault("client.mouse_speed", 0.003)
	v.SetDefault("client.max_particles", 1000)
	v.SetDefault("client.server_url", "")
	v.SetDefault("client.quick_chat", "gg")

	v.SetDefault("world.tile_size", 64.0)
	v.SetDefault("world.map_file", "")
	v.SetDefault("world.watch", false)

	v.SetDefault("player.start_x", 128.0)
	v.SetDefault("player.start_y", 128.0)
	v.SetDefault("player.speed", 180.0)
	v.SetDefault("player.rotation_speed", 180.0)
	v.SetDefault("player.radius", 8.0)
	v.SetDefault("player.max_health", 100)
	v.SetDefault("player.max_ammo", 100)
	v.SetDefault("player.shoot_cooldown", 250*time.Millisecond)

	v.SetDefault("enemy.count", 5)
	v.SetDefault("enemy.speed", 120.0)
	v.SetDefault("enemy.health", 100)
	v.SetDefault("enemy.radius", 16.0)
	v.SetDefault("enemy.chase_range", 400.0)
	v.SetDefault("enemy.attack_range", 30.0)
	v.SetDefault("enemy.attack_damage", 2)
	v.SetDefault("enemy.attack_cooldown", time.Second)
	v.SetDefault("enemy.animation_interval", 200*time.Millisecond)
	v.SetDefault("enemy.kill_score", 100)

	v.SetDefault("projectile.speed", 480.0)
	v.SetDefault("projectile.damage", 25)
	v.SetDefault("projectile.radius", 4.0)
	v.SetDefault("projectile.lifetime", 5*time.Second)
	v.SetDefault("projectile.hit_radius", 20.0)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.health_port", 3001)
	v.SetDefault("server.tick_rate", 20)
	v.SetDefault("server.max_players", 16)
	v.SetDefault("server.player_timeout", 30*time.Second)
	v.SetDefault("server.max_move_distance", 10.0)
	v.SetDefault("server.kill_score", 100)
	v.SetDefault("server.spawn_min", 300.0)
	v.SetDefault("server.spawn_spread", 400.0)
	v.SetDefault("server.send_buffer", 64)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.master_volume", 0.7)
	v.SetDefault("audio.sfx_volume", 0.8)
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.max_distance", 500.0)

	v.SetDefault("textures.size", 64)
	v.SetDefault("textures.quality", "high")
	v.SetDefault("textures.seed", 1)
	v.SetDefault("textures.use_service", false)
	v.SetDefault("textures.service_url", "http://localhost:5000")
	v.SetDefault("textures.request_timeout", 5*time.Second)
	v.SetDefault("textures.health_timeout", 2*time.Second)
	v.SetDefault("textures.listen_addr", ":5000")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load builds the configuration. An empty path looks for config.yaml in
// the working directory and silently uses defaults when there is none; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read config.yaml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in defaults without consulting files or the environment
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Client.ScreenWidth <= 0 || c.Client.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("client screen %dx%d must be positive", c.Client.ScreenWidth, c.Client.ScreenHeight))
	}
	if c.Client.RenderScale <= 0 || c.Client.RenderScale > 1 {
		errs = append(errs, fmt.Errorf("client render_scale %v must be in (0, 1]", c.Client.RenderScale))
	}
	if c.Client.FOV <= 0 || c.Client.FOV >= 180 {
		errs = append(errs, fmt.Errorf("client fov %v must be in (0, 180)", c.Client.FOV))
	}
	if c.World.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("world tile_size %v must be positive", c.World.TileSize))
	}
	if c.Server.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("server tick_rate %d must be positive", c.Server.TickRate))
	}
	if c.Server.MaxPlayers <= 0 {
		errs = append(errs, fmt.Errorf("server max_players %d must be positive", c.Server.MaxPlayers))
	}
	for name, port := range map[string]int{"port": c.Server.Port, "health_port": c.Server.HealthPort} {
		if port < 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("server %s %d out of range", name, port))
		}
	}
	if c.Player.MaxHealth <= 0 || c.Enemy.Health <= 0 {
		errs = append(errs, errors.New("health values must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
