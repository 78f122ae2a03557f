package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/repository"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var companyID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机企业账户, 2: 为指定企业插入随机职位)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&companyID, "company-id", 0, "随机插入职位的企业 ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的企业数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomRecruiter(cfg.Seed.Company.Password)
				if err != nil {
					slog.Error("无法生成随机企业账户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入企业账户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入企业账户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if companyID <= 0 {
			slog.Error("请输入合法的企业 ID")
			return
		}
		if n <= 0 {
			slog.Error("请输入合法的职位数量")
			return
		}

		// 获取对应的企业账户
		company, err := repo.GetUserByID(companyID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("指定的企业不存在", slog.Int64("company_id", companyID))
			default:
				slog.Error("无法获取企业账户", slog.String("error", err.Error()))
			}
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			offer := utils.GenerateRandomOffer(company)
			if err := repo.CreateOffer(offer); err != nil {
				slog.Error("无法插入职位", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入职位成功", slog.Int("count", cnt), slog.Int64("company_id", companyID))
	default:
		slog.Error("指定的操作非法")
	}
}
