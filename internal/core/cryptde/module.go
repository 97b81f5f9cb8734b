package cryptde

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-proxygate/config"
	pkgif "github.com/dep2p/go-proxygate/pkg/interfaces"
	"github.com/dep2p/go-proxygate/pkg/lib/log"
	"github.com/dep2p/go-proxygate/pkg/types"
)

var logger = log.Logger("proxygate/cryptde")

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// 配置（可选，使用默认配置）
	Config *config.Config `optional:"true"`
}

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	CryptDE pkgif.CryptDE
}

// ProvideCryptDE 按配置创建加密引擎
func ProvideCryptDE(input ModuleInput) (ModuleOutput, error) {
	cfg := config.DefaultIdentityConfig()
	if input.Config != nil {
		cfg = input.Config.Identity
	}

	c, err := New(cfg)
	if err != nil {
		return ModuleOutput{}, err
	}
	logger.Info("加密引擎就绪", "mode", cfg.CryptoMode, "key", c.PublicKey().ShortString())
	return ModuleOutput{CryptDE: c}, nil
}

// New 按身份配置创建加密引擎
func New(cfg config.IdentityConfig) (pkgif.CryptDE, error) {
	switch cfg.CryptoMode {
	case config.CryptoModeBox, "":
		return LoadOrGenerate(cfg.KeyFile)
	case config.CryptoModeNull:
		key, err := types.ParsePublicKey(cfg.NullKey)
		if err != nil {
			return nil, fmt.Errorf("null key: %w", err)
		}
		logger.Warn("使用不加密的 null 引擎，仅用于排障")
		return NewNullCryptDE(key), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.CryptoMode)
	}
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("cryptde",
		fx.Provide(ProvideCryptDE),
	)
}
