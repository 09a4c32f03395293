package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"minutemate/models"
	"minutemate/utils"
)

type TeamController struct {
	DB       *gorm.DB
	Notifier *utils.Notifier
	Logger   *log.Logger
}

func NewTeamController(db *gorm.DB, notifier *utils.Notifier, logger *log.Logger) *TeamController {
	return &TeamController{
		DB:       db,
		Notifier: notifier,
		Logger:   logger,
	}
}

// CreateTeam creates the team and adds the creator as an admin member in the
// same transaction.
func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var input models.TeamInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	team := input.ToRow(user.ID)
	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			TeamID:  team.ID,
			UserID:  user.ID,
			IsAdmin: true,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create team", err)
	}

	tc.Notifier.Publish(utils.ChangeEvent{Entity: "teams", Action: "insert", ID: team.ID})

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(
		models.ToTeamView(&team, 1, true, true)))
}

// memberCounts returns member totals per team in one grouped query.
func (tc *TeamController) memberCounts() (map[string]int64, error) {
	var rows []struct {
		TeamID string
		Total  int64
	}
	err := tc.DB.Model(&models.TeamMember{}).
		Select("team_id, count(*) as total").
		Group("team_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.TeamID] = row.Total
	}
	return counts, nil
}

// GetTeams returns every team with its member count and the current user's
// membership flags.
func (tc *TeamController) GetTeams(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var teams []models.Team
	if err := tc.DB.Order("created_at DESC").Find(&teams).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch teams", err)
	}

	counts, err := tc.memberCounts()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count team members", err)
	}

	var memberships []models.TeamMember
	if err := tc.DB.Where("user_id = ?", user.ID).Find(&memberships).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch memberships", err)
	}
	membershipByTeam := make(map[string]models.TeamMember, len(memberships))
	for _, m := range memberships {
		membershipByTeam[m.TeamID] = m
	}

	views := make([]models.TeamView, 0, len(teams))
	for i := range teams {
		membership, isMember := membershipByTeam[teams[i].ID]
		views = append(views, models.ToTeamView(&teams[i], counts[teams[i].ID], isMember, isMember && membership.IsAdmin))
	}

	return c.JSON(utils.SuccessResponse(views))
}

// GetMyTeams returns the teams the current user belongs to.
func (tc *TeamController) GetMyTeams(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var memberships []models.TeamMember
	if err := tc.DB.Preload("Team").Where("user_id = ?", user.ID).Find(&memberships).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch teams", err)
	}

	counts, err := tc.memberCounts()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count team members", err)
	}

	views := make([]models.TeamView, 0, len(memberships))
	for _, m := range memberships {
		if m.Team == nil {
			continue
		}
		views = append(views, models.ToTeamView(m.Team, counts[m.TeamID], true, m.IsAdmin))
	}

	return c.JSON(utils.SuccessResponse(views))
}

func (tc *TeamController) JoinTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var team models.Team
	if err := tc.DB.First(&team, "id = ?", c.Params("id")).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
	}

	var existing models.TeamMember
	err := tc.DB.Where("team_id = ? AND user_id = ?", team.ID, user.ID).First(&existing).Error
	if err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Already a member of this team", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check membership", err)
	}

	member := models.TeamMember{
		TeamID: team.ID,
		UserID: user.ID,
	}
	if err := tc.DB.Create(&member).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to join team", err)
	}

	tc.Notifier.Publish(utils.ChangeEvent{Entity: "teams", Action: "update", ID: team.ID})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Joined " + team.Name})
}

func (tc *TeamController) LeaveTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var member models.TeamMember
	if err := tc.DB.Where("team_id = ? AND user_id = ?", c.Params("id"), user.ID).First(&member).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Not a member of this team", nil)
	}

	if err := tc.DB.Delete(&member).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to leave team", err)
	}

	tc.Notifier.Publish(utils.ChangeEvent{Entity: "teams", Action: "update", ID: member.TeamID})

	return c.JSON(fiber.Map{"message": "Left team"})
}
