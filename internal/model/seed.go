package model

import "time"

// SeedGroups 本地模式首次启动时的演示分组
func SeedGroups() []Group {
	return []Group{
		{ID: "g1", Name: "钻头工具", Color: "#f97316"},
		{ID: "g2", Name: "套管工具", Color: "#3b82f6"},
		{ID: "g3", Name: "测量仪器", Color: "#10b981"},
	}
}

// SeedTools 本地模式首次启动时的演示工具
func SeedTools(now time.Time) []Tool {
	return []Tool{
		{
			ID:          "t1",
			Name:        `PDC 钻头 8.5"`,
			GroupID:     "g1",
			ImageURL:    "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=400",
			Description: "高效聚晶金刚石复合片钻头，适用于中硬地层",
			Specs: Specs{
				{Name: "直径", Value: "8.5 英寸"},
				{Name: "最大转速", Value: "180 RPM"},
				{Name: "工作压力", Value: "15000 PSI"},
			},
			CreatedAt: now,
		},
		{
			ID:          "t2",
			Name:        "三牙轮钻头",
			GroupID:     "g1",
			ImageURL:    "https://images.unsplash.com/photo-1504328345606-18bbc8c9d7d1?w=400",
			Description: "经典三牙轮设计，适应性强",
			Specs: Specs{
				{Name: "直径", Value: "12.25 英寸"},
				{Name: "牙轮数", Value: "3"},
				{Name: "适用地层", Value: "软-中硬"},
			},
			CreatedAt: now,
		},
		{
			ID:          "t3",
			Name:        "声波测井仪",
			GroupID:     "g3",
			ImageURL:    "https://images.unsplash.com/photo-1581092918056-0c4c3acd3789?w=400",
			Description: "高精度声波测井，实时地层分析",
			Specs: Specs{
				{Name: "测量范围", Value: "0-10000 米"},
				{Name: "精度", Value: "±0.5%"},
				{Name: "耐温", Value: "150°C"},
			},
			CreatedAt: now,
		},
	}
}
