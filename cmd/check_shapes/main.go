package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/rangers/pkg/config"
)

var (
	dataDir = flag.String("data", "data", "数据目录")
	shapeID = flag.String("shape", "", "只显示指定形状")
)

func main() {
	flag.Parse()

	data, err := config.LoadAll(os.DirFS(*dataDir))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	for _, id := range data.Shapes.IDs() {
		if *shapeID != "" && id != *shapeID {
			continue
		}
		fp, _ := data.Shapes.Footprint(id)
		fmt.Printf("%s [%s] size=%d cells=%d center=%s\n",
			id, data.Shapes.Rarity(id), fp.Size(), fp.OccupiedCount(), fp.Center())
		fmt.Println(fp.String())
		fmt.Println()
	}
}
