// 词库数据集校验脚本
//
// 服务启动时会静默丢弃不合法的词条（拆块拼不回原词等），
// 此脚本用于上线前把问题词条一次性找出来修掉。
//
// 用法: go run scripts/validate_dataset.go

package main

import (
	"encoding/json"
	"log"
	"os"
	"sensory_sheets_backend/internal/model"
	"strings"

	"gopkg.in/yaml.v3"
)

// 只关心数据集路径，不复用完整配置结构
type contentConfig struct {
	Content struct {
		WordDatasetPath string `yaml:"word_dataset_path"`
	} `yaml:"content"`
}

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg contentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	path := cfg.Content.WordDatasetPath
	if path == "" {
		log.Fatal("配置中没有词库数据集路径")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("无法读取词库数据集 %s: %v", path, err)
	}

	var dataset model.WordDataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		log.Fatalf("解析词库数据集失败: %v", err)
	}

	bad := 0
	for _, entry := range dataset.Words {
		if entry.Word == "" {
			log.Printf("空词条: %+v", entry)
			bad++
			continue
		}
		if len(entry.Chunks) > 0 && strings.Join(entry.Chunks, "") != entry.Word {
			log.Printf("词条 %q 的拆块 %v 拼不回原词", entry.Word, entry.Chunks)
			bad++
		}
		if len(entry.AltChunks) > 0 && strings.Join(entry.AltChunks, "") != entry.Word {
			log.Printf("词条 %q 的备选拆块 %v 拼不回原词", entry.Word, entry.AltChunks)
			bad++
		}
	}

	if bad > 0 {
		log.Fatalf("校验失败: %d 个问题词条，共 %d 条", bad, len(dataset.Words))
	}
	log.Printf("校验通过: %d 个词条", len(dataset.Words))
}
