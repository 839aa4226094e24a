package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/heliosrt/helios/rt/accel"
	"github.com/heliosrt/helios/rt/core"
	"github.com/heliosrt/helios/scene"
)

var infoFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene",
		Value: "patio",
		Usage: "bundled scene name (patio, sphere)",
	},
}

func describeMaterial(m *core.MaterialInfo) string {
	if m.Emits() {
		return fmt.Sprintf("emissive (%.1f %.1f %.1f)", m.Emissive.X(), m.Emissive.Y(), m.Emissive.Z())
	}
	if m.Metallic > 0 {
		return fmt.Sprintf("metal rough=%.2f", m.Roughness)
	}
	return fmt.Sprintf("dielectric rough=%.2f", m.Roughness)
}

func infoAction(c *cli.Context) error {
	name := c.String("scene")
	world, err := scene.ByName(name)
	if err != nil {
		return err
	}
	bvh := accel.Build(world)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Instance", "Tag", "Triangles", "Material"})
	for i := range world.Instances {
		inst := &world.Instances[i]
		table.Append([]string{
			fmt.Sprintf("%d", inst.Id),
			inst.Tag[:8],
			fmt.Sprintf("%d", inst.TriangleCount()),
			describeMaterial(world.Material(inst)),
		})
	}
	table.SetFooter([]string{
		name,
		fmt.Sprintf("%d instances", len(world.Instances)),
		fmt.Sprintf("%d", world.TriangleTotal()),
		fmt.Sprintf("%d bvh nodes", bvh.NodeTotal()),
	})
	table.Render()

	return nil
}
