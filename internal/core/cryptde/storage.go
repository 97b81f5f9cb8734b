package cryptde

import (
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PEM 类型常量
const pemTypeCurve25519Private = "CURVE25519 PRIVATE KEY"

// ============================================================================
//                              私钥持久化
// ============================================================================

// LoadOrGenerate 加载密钥文件，不存在时生成并保存
//
// path 为空时生成临时密钥，不做持久化。
func LoadOrGenerate(path string) (*BoxCryptDE, error) {
	if path == "" {
		return GenerateBoxCryptDE()
	}

	c, err := LoadPrivateKeyPEM(path)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	c, err = GenerateBoxCryptDE()
	if err != nil {
		return nil, err
	}
	if err := SavePrivateKeyPEM(c, path); err != nil {
		return nil, err
	}
	logger.Info("已生成新的节点密钥", "path", path, "key", c.PublicKey().ShortString())
	return c, nil
}

// SavePrivateKeyPEM 保存私钥到 PEM 文件
//
// 使用原子写操作（临时文件 + rename），文件权限 0600。
func SavePrivateKeyPEM(c *BoxCryptDE, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}
	block := &pem.Block{
		Type:  pemTypeCurve25519Private,
		Bytes: c.PrivateKey(),
	}
	return atomicWriteFile(path, pem.EncodeToMemory(block), 0600)
}

// LoadPrivateKeyPEM 从 PEM 文件加载私钥
func LoadPrivateKeyPEM(path string) (*BoxCryptDE, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户配置的密钥路径
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemTypeCurve25519Private {
		return nil, ErrInvalidPEM
	}
	return NewBoxCryptDE(block.Bytes)
}

// atomicWriteFile 原子写文件
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
